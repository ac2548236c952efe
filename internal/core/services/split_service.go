package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
)

// BlockSize is the read/write unit for split and join
const BlockSize = 8 * 1024

// ErrInvalidPieceSize is returned for non-positive piece sizes
var ErrInvalidPieceSize = errors.New("piece size must be a positive number of megabytes")

// SplitService cuts files into numbered pieces and glues them back together
type SplitService struct{}

// NewSplitService creates a new split service
func NewSplitService() *SplitService {
	return &SplitService{}
}

// SplitRequest represents a request to split a file
type SplitRequest struct {
	Path        string
	PieceSizeMB int
}

// SplitResponse lists the pieces written
type SplitResponse struct {
	Pieces int
	Paths  []string
	Bytes  int64
}

// JoinRequest represents a request to rebuild a file from its pieces
type JoinRequest struct {
	Path string
}

// JoinResponse represents the result of a join
type JoinResponse struct {
	Pieces int
	Bytes  int64
}

// PiecePath returns "<path>.NNN" for 1-based piece n
func PiecePath(path string, n int) string {
	return fmt.Sprintf("%s.%03d", path, n)
}

// Split writes req.Path into path.001, path.002, ...
//
// Each piece receives whole 8 KiB blocks until it holds at least
// PieceSizeMB megabytes; the size is checked after every block, so a piece
// may exceed the target by up to one block. A piece is only opened once
// there are bytes for it, so a file that is an exact multiple of the piece
// size gets no empty trailing piece. An empty file yields a single empty
// piece.
func (s *SplitService) Split(ctx context.Context, req SplitRequest) (resp *SplitResponse, err error) {
	if req.PieceSizeMB <= 0 {
		return nil, ErrInvalidPieceSize
	}
	limit := int64(req.PieceSizeMB) * 1024 * 1024

	src, err := os.Open(req.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open source file: %w", err)
	}
	defer src.Close()

	resp = &SplitResponse{}
	var piece *os.File
	var written int64

	closePiece := func() error {
		if piece == nil {
			return nil
		}
		cerr := piece.Close()
		piece = nil
		if cerr != nil {
			return fmt.Errorf("failed to close piece: %w", cerr)
		}
		return nil
	}
	defer func() {
		if cerr := closePiece(); err == nil && cerr != nil {
			err = cerr
			resp = nil
		}
	}()

	openPiece := func() error {
		if err := closePiece(); err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		p := PiecePath(req.Path, resp.Pieces+1)
		f, err := os.Create(p)
		if err != nil {
			return fmt.Errorf("failed to create piece: %w", err)
		}
		piece = f
		written = 0
		resp.Pieces++
		resp.Paths = append(resp.Paths, p)
		return nil
	}

	buf := make([]byte, BlockSize)
	for {
		n, rerr := io.ReadFull(src, buf)
		if rerr == io.EOF {
			break
		}
		if rerr != nil && rerr != io.ErrUnexpectedEOF {
			return nil, fmt.Errorf("failed to read source file: %w", rerr)
		}

		if piece == nil || written >= limit {
			if err := openPiece(); err != nil {
				return nil, err
			}
		}

		if _, err := piece.Write(buf[:n]); err != nil {
			return nil, fmt.Errorf("failed to write piece: %w", err)
		}
		written += int64(n)
		resp.Bytes += int64(n)

		if rerr == io.ErrUnexpectedEOF {
			break
		}
	}

	if resp.Pieces == 0 {
		if err := openPiece(); err != nil {
			return nil, err
		}
	}

	return resp, nil
}

// Join concatenates path.001, path.002, ... into path, stopping at the
// first missing piece. The output file is created (or truncated) even when
// no piece exists.
func (s *SplitService) Join(ctx context.Context, req JoinRequest) (resp *JoinResponse, err error) {
	dst, err := os.Create(req.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if cerr := dst.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("failed to close output file: %w", cerr)
			resp = nil
		}
	}()

	resp = &JoinResponse{}
	buf := make([]byte, BlockSize)

	for n := 1; ; n++ {
		p := PiecePath(req.Path, n)
		info, err := os.Stat(p)
		if err != nil || !info.Mode().IsRegular() {
			break
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		copied, err := appendPiece(dst, p, buf)
		if err != nil {
			return nil, err
		}
		resp.Pieces++
		resp.Bytes += copied
	}

	return resp, nil
}

func appendPiece(dst io.Writer, path string, buf []byte) (int64, error) {
	src, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("failed to open piece: %w", err)
	}
	defer src.Close()

	n, err := io.CopyBuffer(dst, src, buf)
	if err != nil {
		return n, fmt.Errorf("failed to append piece %s: %w", path, err)
	}
	return n, nil
}
