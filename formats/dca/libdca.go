// SPDX-License-Identifier: EPL-2.0

//go:build cgo && libdca

package dca

/*
#cgo pkg-config: libdca
#include <stdint.h>
#include <stdlib.h>
#include <string.h>
#include <dca.h>

static void dcadec_dynrng_off(dca_state_t *s) { dca_dynrng(s, NULL, NULL); }

static int dcadec_fixed(void) {
#ifdef LIBDCA_FIXED
	return 1;
#else
	return 0;
#endif
}
*/
import "C"

import (
	"fmt"
	"unsafe"
)

// libdca keeps 256 samples for each of up to 12 channels.
const libdcaSampleSlots = BlockSize * 12

func init() {
	RegisterCore(DefaultCore, NewLibdcaCore)
}

// libdcaCore binds the system libdca. The frame is copied into C memory
// because libdca keeps reading it while blocks are decoded.
type libdcaCore struct {
	state *C.dca_state_t
	frame *C.uint8_t
	cap   int
}

// NewLibdcaCore creates a core backed by libdca.
func NewLibdcaCore() (Core, error) {
	st := C.dca_init(0)
	if st == nil {
		return nil, fmt.Errorf("dca_init returned NULL")
	}
	return &libdcaCore{state: st}, nil
}

func (c *libdcaCore) Sync(header []byte) (SyncInfo, bool) {
	if len(header) < HeaderSize {
		return SyncInfo{}, false
	}

	var flags, rate, bitRate, frameLength C.int
	n := C.dca_syncinfo(c.state, (*C.uint8_t)(unsafe.Pointer(&header[0])),
		&flags, &rate, &bitRate, &frameLength)
	if n == 0 {
		return SyncInfo{}, false
	}

	mode, _ := DetectMode(header)
	return SyncInfo{
		FrameSize:   int(n),
		FrameLength: int(frameLength),
		Flags:       Flags(flags),
		SampleRate:  int(rate),
		BitRate:     int(bitRate),
		Mode:        mode,
	}, true
}

func (c *libdcaCore) Frame(frame []byte, flags Flags, level, bias float32) (Flags, error) {
	if len(frame) == 0 {
		return flags, ErrFrameDecode
	}
	if c.cap < len(frame) {
		C.free(unsafe.Pointer(c.frame))
		c.frame = (*C.uint8_t)(C.malloc(C.size_t(len(frame))))
		c.cap = len(frame)
	}
	C.memcpy(unsafe.Pointer(c.frame), unsafe.Pointer(&frame[0]), C.size_t(len(frame)))

	cflags := C.int(flags)
	clevel := C.level_t(level)
	if C.dca_frame(c.state, c.frame, &cflags, &clevel, C.sample_t(bias)) != 0 {
		return flags, ErrFrameDecode
	}
	return Flags(cflags), nil
}

func (c *libdcaCore) Blocks() int { return int(C.dca_blocks_num(c.state)) }

func (c *libdcaCore) Block() error {
	if C.dca_block(c.state) != 0 {
		return ErrFrameDecode
	}
	return nil
}

func (c *libdcaCore) Samples() []int32 {
	p := C.dca_samples(c.state)
	return unsafe.Slice((*int32)(unsafe.Pointer(p)), libdcaSampleSlots)
}

func (c *libdcaCore) SampleFormat() SampleFormat {
	if C.dcadec_fixed() != 0 {
		return SampleFixed
	}
	return SampleFloatBiased
}

func (c *libdcaCore) DisableDynamicRange() { C.dcadec_dynrng_off(c.state) }

func (c *libdcaCore) Close() error {
	if c.state != nil {
		C.dca_free(c.state)
		c.state = nil
	}
	C.free(unsafe.Pointer(c.frame))
	c.frame = nil
	c.cap = 0
	return nil
}
