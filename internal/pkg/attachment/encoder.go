package attachment

import (
	"encoding/base64"
	"fmt"
	"io"
	"sync"

	"neurax-chat-be/internal/entity"
)

const fallbackMimeType = "application/octet-stream"

// Input is one file selected for upload. Open is called once per encode.
type Input struct {
	Name     string
	MimeType string
	Open     func() (io.ReadCloser, error)
}

// EncodeAll reads every input concurrently and returns attachments in the
// same order as the inputs, each carrying a base64 data URI. If any input
// fails the whole batch fails.
func EncodeAll(inputs []Input) ([]entity.Attachment, error) {
	out := make([]entity.Attachment, len(inputs))
	errs := make([]error, len(inputs))

	var wg sync.WaitGroup
	for i := range inputs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			att, err := encode(inputs[i])
			if err != nil {
				errs[i] = err
				return
			}
			out[i] = att
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("failed to encode attachment %s: %w", inputs[i].Name, err)
		}
	}
	return out, nil
}

func encode(in Input) (entity.Attachment, error) {
	rc, err := in.Open()
	if err != nil {
		return entity.Attachment{}, err
	}
	defer rc.Close()

	raw, err := io.ReadAll(rc)
	if err != nil {
		return entity.Attachment{}, err
	}

	mimeType := in.MimeType
	if mimeType == "" {
		mimeType = fallbackMimeType
	}
	return entity.Attachment{
		Name:     in.Name,
		MimeType: mimeType,
		Data:     fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(raw)),
	}, nil
}
