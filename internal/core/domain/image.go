package domain

// Image is a binary image waiting to be uploaded.
type Image struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Empty reports whether there is no payload to upload.
func (i Image) Empty() bool {
	return len(i.Data) == 0
}
