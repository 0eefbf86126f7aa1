package model

// Image is a single binary attachment chosen for a draft.
type Image struct {
	Filename    string
	ContentType string
	Data        []byte
}

func (i *Image) Size() int {
	if i == nil {
		return 0
	}
	return len(i.Data)
}

type Draft struct {
	Title        string `validate:"notblank"`
	Content      string `validate:"notblank"`
	Image        *Image
	ImagePreview string
}

func (d *Draft) Reset() {
	d.Title = ""
	d.Content = ""
	d.Image = nil
	d.ImagePreview = ""
}
