package tag

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bogem/id3v2/v2"
	mp4tag "github.com/zhaarey/go-mp4tag"
)

// EmbedCover replaces any existing front-cover art in the file with the
// given JPEG bytes.
func EmbedCover(path string, jpeg []byte) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3":
		return embedCoverID3(path, jpeg)
	case ".m4a", ".mp4":
		return embedCoverMP4(path, jpeg)
	}
	return fmt.Errorf("unsupported audio format: %s", filepath.Ext(path))
}

func embedCoverID3(path string, jpeg []byte) error {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return fmt.Errorf("failed to open id3 tag: %w", err)
	}
	defer tag.Close()

	tag.DeleteFrames(tag.CommonID("Attached picture"))
	tag.AddAttachedPicture(id3v2.PictureFrame{
		Encoding:    id3v2.EncodingUTF8,
		MimeType:    "image/jpeg",
		PictureType: id3v2.PTFrontCover,
		Description: "Cover",
		Picture:     jpeg,
	})

	if err := tag.Save(); err != nil {
		return fmt.Errorf("failed to save cover art: %w", err)
	}
	return nil
}

func embedCoverMP4(path string, jpeg []byte) error {
	mp4, err := mp4tag.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open mp4 container: %w", err)
	}
	defer mp4.Close()

	tags := &mp4tag.MP4Tags{
		Pictures: []*mp4tag.MP4Picture{
			{Format: mp4tag.ImageTypeJPEG, Data: jpeg},
		},
	}
	if err := mp4.Write(tags, []string{}); err != nil {
		return fmt.Errorf("failed to write cover art: %w", err)
	}
	return nil
}
