package mediadata

import (
	"io"
	"regexp"
	"strconv"

	"golang.org/x/net/html"
)

var lengthSecondsRe = regexp.MustCompile(`"lengthSeconds"\s*:\s*"(\d+)"`)

func (r *Resolver) getFromPage(videoURL string) (*VideoData, error) {
	resp, err := r.client.Get(videoURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	doc, err := html.Parse(resp.Body)
	if err != nil {
		return nil, err
	}

	return &VideoData{Title: getTitle(doc)}, nil
}

// getDurationFromPage scrapes the player response embedded in the watch page.
// Any failure means the duration stays unknown.
func (r *Resolver) getDurationFromPage(videoURL string) (int, error) {
	resp, err := r.client.Get(videoURL)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 2<<20))
	if err != nil {
		return 0, err
	}

	match := lengthSecondsRe.FindSubmatch(body)
	if match == nil {
		return 0, ErrVideoNotFound
	}

	duration, err := strconv.Atoi(string(match[1]))
	if err != nil {
		return 0, err
	}

	return duration, nil
}

func getTitle(n *html.Node) string {
	if n.Type == html.ElementNode && n.Data == "title" && n.FirstChild != nil {
		return n.FirstChild.Data
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if title := getTitle(c); title != "" {
			return title
		}
	}
	return ""
}
