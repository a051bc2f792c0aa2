package clipboard

import (
	"errors"

	"github.com/atotto/clipboard"
)

// System writes to the OS clipboard (xclip/xsel/wl-copy on Linux, pbcopy on macOS).
type System struct{}

var errUnsupported = errors.New("no clipboard utility available on this system")

func (System) WriteAll(text string) error {
	if clipboard.Unsupported {
		return errUnsupported
	}
	return clipboard.WriteAll(text)
}
