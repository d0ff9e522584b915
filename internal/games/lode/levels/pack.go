// Package levels reads and writes level resources.
//
// A resource is a flat blob of fixed-size blocks, one per level. Each block
// holds Width*Height tile codes packed two per byte, low nibble first.
package levels

import (
	"errors"
	"fmt"
	"os"

	"github.com/vovakirdan/tui-lode/internal/games/lode/sim"
)

const (
	// BlockSize is the size in bytes of one packed level.
	BlockSize = sim.Width * sim.Height / 2
	// DefaultMaxLevels is the level count of a full binary resource.
	DefaultMaxLevels = 300
	// GameLevels is the number of levels in one game of a full resource.
	GameLevels = 150
)

var (
	// ErrResourceTruncated means the blob ends before the requested level block.
	ErrResourceTruncated = errors.New("levels: resource truncated")
	// ErrBadLevel means a text level could not be parsed.
	ErrBadLevel = errors.New("levels: bad level")
)

// Pack is a level resource.
type Pack struct {
	name      string
	blob      []byte
	maxLevels int
	titles    []string
}

// NewPack wraps a packed blob. maxLevels is the block count levels wrap
// around at; zero means as many whole blocks as the blob holds.
func NewPack(name string, blob []byte, maxLevels int) *Pack {
	if maxLevels <= 0 {
		maxLevels = len(blob) / BlockSize
	}
	return &Pack{name: name, blob: blob, maxLevels: maxLevels}
}

// Open reads a binary level resource from disk.
func Open(path string, maxLevels int) (*Pack, error) {
	blob, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("levels: cannot read %s: %w", path, err)
	}
	return NewPack(path, blob, maxLevels), nil
}

// Name returns the pack name.
func (p *Pack) Name() string {
	return p.name
}

// Count returns how many levels the pack addresses.
func (p *Pack) Count() int {
	return p.maxLevels
}

// GameLevels returns how many levels make up one game of this pack.
// Full resources hold two games; smaller packs are a single game.
func (p *Pack) GameLevels() int {
	if p.maxLevels > GameLevels {
		return GameLevels
	}
	return p.maxLevels
}

// Title returns the level's name if the pack has one.
func (p *Pack) Title(level int) string {
	if p.maxLevels == 0 {
		return ""
	}
	i := level % p.maxLevels
	if i < 0 || i >= len(p.titles) {
		return ""
	}
	return p.titles[i]
}

// Blob returns a copy of the packed resource.
func (p *Pack) Blob() []byte {
	out := make([]byte, len(p.blob))
	copy(out, p.blob)
	return out
}

// Codes returns the unpacked tile codes of a level, one byte per cell in
// row-major order. The level index wraps at Count.
func (p *Pack) Codes(level int) ([]byte, error) {
	if p.maxLevels <= 0 {
		return nil, fmt.Errorf("level %d: %w", level, ErrResourceTruncated)
	}
	block := level % p.maxLevels
	if block < 0 {
		block += p.maxLevels
	}
	off := block * BlockSize
	if off+BlockSize > len(p.blob) {
		return nil, fmt.Errorf("level %d needs %d bytes, have %d: %w",
			level, off+BlockSize, len(p.blob), ErrResourceTruncated)
	}
	return Decode(p.blob[off : off+BlockSize]), nil
}

// Decode unpacks a block into one code per cell, low nibble first.
func Decode(block []byte) []byte {
	codes := make([]byte, len(block)*2)
	for i, b := range block {
		codes[2*i] = b & 0x0f
		codes[2*i+1] = b >> 4
	}
	return codes
}

// Encode packs cell codes two per byte, low nibble first.
// An odd trailing code is packed with a zero high nibble.
func Encode(codes []byte) []byte {
	block := make([]byte, (len(codes)+1)/2)
	for i, c := range codes {
		if i%2 == 0 {
			block[i/2] |= c & 0x0f
		} else {
			block[i/2] |= (c & 0x0f) << 4
		}
	}
	return block
}
