package controller

import (
	"strconv"
	"time"
)

func (c controller) generateTimeBasedID() string {
	return strconv.FormatInt(time.Now().UnixNano(), 36)
}
