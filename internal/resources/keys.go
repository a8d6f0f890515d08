package resources

import "strconv"

// Cache keys. Every resource goes through one of these so that unrelated
// resources never share a key.
const (
	KeyNews      = "news"
	KeyTags      = "tags"
	KeyDogs      = "dogs"
	KeyDogSlides = "dogs:slides"
	KeyStats     = "stats"
	KeyRequests  = "requests"
)

func NewsKey(id int64) string    { return "news:" + strconv.FormatInt(id, 10) }
func DogKey(id int64) string     { return "dog:" + strconv.FormatInt(id, 10) }
func TagKey(id int64) string     { return "tag:" + strconv.FormatInt(id, 10) }
func RequestKey(id int64) string { return "request:" + strconv.FormatInt(id, 10) }
