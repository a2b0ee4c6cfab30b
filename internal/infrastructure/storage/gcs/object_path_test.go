package gcs

import "testing"

func TestObjectPathFromURL(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		wantPath string
		wantOK   bool
		wantErr  bool
	}{
		{
			name:     "firebase download url",
			url:      "https://firebasestorage.googleapis.com/v0/b/shop.appspot.com/o/images%2Fproduct%20one.png?alt=media&token=abc",
			wantPath: "images/product one.png",
			wantOK:   true,
		},
		{
			name:     "no query string",
			url:      "https://firebasestorage.googleapis.com/v0/b/shop/o/offers%2Fbanner.jpg",
			wantPath: "offers/banner.jpg",
			wantOK:   true,
		},
		{
			name:     "plus sign is kept literally",
			url:      "https://host/v0/b/shop/o/a+b.png?alt=media",
			wantPath: "a+b.png",
			wantOK:   true,
		},
		{
			name:   "missing segment",
			url:    "https://cdn.example.com/images/a.png",
			wantOK: false,
		},
		{
			name:   "empty url",
			url:    "",
			wantOK: false,
		},
		{
			name:    "broken escape",
			url:     "https://host/v0/b/shop/o/images%2",
			wantOK:  true,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path, ok, err := ObjectPathFromURL(tt.url)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ObjectPathFromURL() error = %v, wantErr %v", err, tt.wantErr)
			}
			if ok != tt.wantOK {
				t.Errorf("ObjectPathFromURL() ok = %v, want %v", ok, tt.wantOK)
			}
			if path != tt.wantPath {
				t.Errorf("ObjectPathFromURL() path = %q, want %q", path, tt.wantPath)
			}
		})
	}
}
