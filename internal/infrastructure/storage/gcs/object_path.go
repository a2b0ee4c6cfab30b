package gcs

import (
	"fmt"
	"net/url"
	"strings"
)

// objectSegment separates the bucket prefix from the encoded object path in
// Firebase download URLs, e.g.
// https://firebasestorage.googleapis.com/v0/b/<bucket>/o/images%2Fa.png?alt=media&token=...
const objectSegment = "/o/"

// ObjectPathFromURL extracts the decoded object path from a public download URL.
// ok is false when the URL carries no object segment.
func ObjectPathFromURL(publicURL string) (path string, ok bool, err error) {
	_, rest, found := strings.Cut(publicURL, objectSegment)
	if !found {
		return "", false, nil
	}

	rest, _, _ = strings.Cut(rest, "?")

	path, err = url.PathUnescape(rest)
	if err != nil {
		return "", true, fmt.Errorf("failed to decode object path %q: %w", rest, err)
	}
	return path, true, nil
}
