// SPDX-License-Identifier: EPL-2.0

package dca

import (
	"fmt"
	"io"

	"github.com/ik5/dcadec/audio"
)

// Decoder adapts Open to audio.Decoder. With a nil New it uses the core
// registered as DefaultCore.
type Decoder struct {
	New     CoreFactory
	Options []Option
}

func (d Decoder) Decode(rs io.ReadSeeker) (audio.Stream, error) {
	f := d.New
	if f == nil {
		var ok bool
		if f, ok = LookupCore(DefaultCore); !ok {
			return nil, fmt.Errorf("%w: %q is not registered", ErrNoCore, DefaultCore)
		}
	}

	s, err := Open(rs, f, d.Options...)
	if err != nil {
		return nil, err
	}
	return s, nil
}
