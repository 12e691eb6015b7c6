// SPDX-License-Identifier: EPL-2.0

package wav

import "encoding/binary"

// RIFF fields are little-endian on every host. These helpers are the only
// place the package touches byte order.

func Uint16LE(b []byte) uint16 { return binary.LittleEndian.Uint16(b) }
func Uint32LE(b []byte) uint32 { return binary.LittleEndian.Uint32(b) }
func Int16LE(b []byte) int16   { return int16(binary.LittleEndian.Uint16(b)) }
func Int32LE(b []byte) int32   { return int32(binary.LittleEndian.Uint32(b)) }

func PutUint16LE(b []byte, v uint16) { binary.LittleEndian.PutUint16(b, v) }
func PutUint32LE(b []byte, v uint32) { binary.LittleEndian.PutUint32(b, v) }
func PutInt16LE(b []byte, v int16)   { binary.LittleEndian.PutUint16(b, uint16(v)) }
