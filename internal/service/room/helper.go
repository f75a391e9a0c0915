package room

import (
	"github.com/syncroom/server/internal/repository/room"
)

func videoFromRepo(v *room.Video) Video {
	return Video{
		URL:         v.URL,
		Title:       v.Title,
		Duration:    v.Duration,
		AddedByID:   v.AddedByID,
		AddedByName: v.AddedByName,
		Upvotes:     v.Upvotes,
		Downvotes:   v.Downvotes,
	}
}

func queueFromRepo(queue []room.Video) []Video {
	videos := make([]Video, 0, len(queue))
	for i := range queue {
		videos = append(videos, videoFromRepo(&queue[i]))
	}

	return videos
}

func currentVideoFromRepo(cv *room.CurrentVideo) *CurrentVideo {
	if cv == nil {
		return nil
	}

	return &CurrentVideo{
		URL:         cv.URL,
		Title:       cv.Title,
		Duration:    cv.Duration,
		AddedByID:   cv.AddedByID,
		AddedByName: cv.AddedByName,
	}
}
