package youtube

import (
	"net/url"
	"strings"
)

const shortHost = "youtu.be"
const embedSegment = "embed"
const videoParam = "v"

// VideoIDFromString parses raw and extracts the video id with VideoID.
func VideoIDFromString(raw string) (string, bool) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", false
	}
	return VideoID(u)
}

// VideoID extracts the video identifier from the usual YouTube url shapes:
//
//	https://youtu.be/<id>
//	https://www.youtube.com/embed/<id>
//	https://www.youtube.com/watch?v=<id>
//
// Path segments are taken decoded, the query value is returned as found.
// The identifier is not validated.
func VideoID(u *url.URL) (string, bool) {
	if u == nil {
		return "", false
	}
	segments := pathSegments(u)
	if strings.HasSuffix(u.Hostname(), shortHost) && len(segments) >= 2 {
		return segments[1], true
	}
	for _, segment := range segments {
		if segment == embedSegment {
			return segments[len(segments)-1], true
		}
	}
	return queryValue(u.RawQuery, videoParam)
}

// pathSegments splits the path the way a path component list looks: the
// leading slash is the first (empty) segment, a trailing slash is dropped.
func pathSegments(u *url.URL) []string {
	path := u.Path
	if path == "" || path == "/" {
		return []string{path}
	}
	return strings.Split(strings.TrimSuffix(path, "/"), "/")
}

// queryValue looks up key in a raw query string without any percent decoding.
func queryValue(rawQuery, key string) (string, bool) {
	if rawQuery == "" {
		return "", false
	}
	for _, pair := range strings.Split(rawQuery, "&") {
		k, v, found := strings.Cut(pair, "=")
		if !found {
			continue
		}
		if k == key {
			return v, true
		}
	}
	return "", false
}
