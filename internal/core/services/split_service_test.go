package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"testing"
)

func writeRandomFile(t *testing.T, size int) (string, []byte) {
	t.Helper()
	data := make([]byte, size)
	rand.New(rand.NewSource(42)).Read(data)

	path := filepath.Join(t.TempDir(), "archive.bin")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("failed to write source file: %v", err)
	}
	return path, data
}

func TestSplitService_RoundTrip(t *testing.T) {
	// 3 MiB plus a partial block so the tail is not block aligned
	size := 3*1024*1024 + 1234

	tests := []struct {
		pieceSizeMB    int
		expectedPieces int
	}{
		{1, 4},
		{5, 1},
		{10, 1},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%dMB", tt.pieceSizeMB), func(t *testing.T) {
			path, original := writeRandomFile(t, size)
			svc := NewSplitService()

			split, err := svc.Split(context.Background(), SplitRequest{Path: path, PieceSizeMB: tt.pieceSizeMB})
			if err != nil {
				t.Fatalf("Split() failed: %v", err)
			}
			if split.Pieces != tt.expectedPieces {
				t.Errorf("expected %d pieces, got %d", tt.expectedPieces, split.Pieces)
			}
			if split.Bytes != int64(size) {
				t.Errorf("expected %d bytes split, got %d", size, split.Bytes)
			}

			// Remove the source so join has to rebuild it
			if err := os.Remove(path); err != nil {
				t.Fatalf("failed to remove source: %v", err)
			}

			joined, err := svc.Join(context.Background(), JoinRequest{Path: path})
			if err != nil {
				t.Fatalf("Join() failed: %v", err)
			}
			if joined.Pieces != split.Pieces {
				t.Errorf("joined %d pieces, split %d", joined.Pieces, split.Pieces)
			}

			rebuilt, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("failed to read joined file: %v", err)
			}
			if !bytes.Equal(rebuilt, original) {
				t.Error("joined file differs from the original")
			}
		})
	}
}

func TestSplitService_PieceNamingAndSizes(t *testing.T) {
	size := 2*1024*1024 + 100
	path, _ := writeRandomFile(t, size)
	svc := NewSplitService()

	resp, err := svc.Split(context.Background(), SplitRequest{Path: path, PieceSizeMB: 1})
	if err != nil {
		t.Fatalf("Split() failed: %v", err)
	}

	expected := []struct {
		name string
		size int64
	}{
		{filepath.Base(path) + ".001", 1024 * 1024},
		{filepath.Base(path) + ".002", 1024 * 1024},
		{filepath.Base(path) + ".003", 100},
	}

	if len(resp.Paths) != len(expected) {
		t.Fatalf("expected %d pieces, got %v", len(expected), resp.Paths)
	}

	for i, e := range expected {
		if filepath.Base(resp.Paths[i]) != e.name {
			t.Errorf("piece %d: expected name %s, got %s", i, e.name, filepath.Base(resp.Paths[i]))
		}
		info, err := os.Stat(resp.Paths[i])
		if err != nil {
			t.Fatalf("failed to stat piece: %v", err)
		}
		if info.Size() != e.size {
			t.Errorf("piece %d: expected %d bytes, got %d", i, e.size, info.Size())
		}
	}
}

func TestSplitService_ExactMultipleHasNoEmptyTail(t *testing.T) {
	path, _ := writeRandomFile(t, 2*1024*1024)
	svc := NewSplitService()

	resp, err := svc.Split(context.Background(), SplitRequest{Path: path, PieceSizeMB: 1})
	if err != nil {
		t.Fatalf("Split() failed: %v", err)
	}
	if resp.Pieces != 2 {
		t.Errorf("expected 2 pieces, got %d", resp.Pieces)
	}
	if _, err := os.Stat(PiecePath(path, 3)); !os.IsNotExist(err) {
		t.Error("unexpected third piece")
	}
}

func TestSplitService_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.bin")
	os.WriteFile(path, []byte{}, 0644)
	svc := NewSplitService()

	resp, err := svc.Split(context.Background(), SplitRequest{Path: path, PieceSizeMB: 1})
	if err != nil {
		t.Fatalf("Split() failed: %v", err)
	}
	if resp.Pieces != 1 {
		t.Fatalf("expected 1 empty piece, got %d", resp.Pieces)
	}

	info, err := os.Stat(PiecePath(path, 1))
	if err != nil {
		t.Fatalf("expected piece .001: %v", err)
	}
	if info.Size() != 0 {
		t.Errorf("expected empty piece, got %d bytes", info.Size())
	}
}

func TestSplitService_InvalidPieceSize(t *testing.T) {
	path, _ := writeRandomFile(t, 10)
	svc := NewSplitService()

	for _, size := range []int{0, -1} {
		_, err := svc.Split(context.Background(), SplitRequest{Path: path, PieceSizeMB: size})
		if !errors.Is(err, ErrInvalidPieceSize) {
			t.Errorf("size %d: expected ErrInvalidPieceSize, got %v", size, err)
		}
	}
}

func TestSplitService_NonExistentSource(t *testing.T) {
	svc := NewSplitService()

	_, err := svc.Split(context.Background(), SplitRequest{Path: "/non/existent/file.bin", PieceSizeMB: 1})
	if err == nil {
		t.Fatal("expected error for non-existent source file")
	}
}

func TestSplitService_JoinStopsAtGap(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "movie.mkv")

	os.WriteFile(PiecePath(path, 1), []byte("first"), 0644)
	os.WriteFile(PiecePath(path, 3), []byte("third"), 0644)

	svc := NewSplitService()
	resp, err := svc.Join(context.Background(), JoinRequest{Path: path})
	if err != nil {
		t.Fatalf("Join() failed: %v", err)
	}

	if resp.Pieces != 1 {
		t.Errorf("expected 1 joined piece, got %d", resp.Pieces)
	}

	content, _ := os.ReadFile(path)
	if string(content) != "first" {
		t.Errorf("expected only the first piece, got %q", content)
	}
}

func TestSplitService_JoinWithoutPieces(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nothing.bin")
	svc := NewSplitService()

	resp, err := svc.Join(context.Background(), JoinRequest{Path: path})
	if err != nil {
		t.Fatalf("Join() failed: %v", err)
	}
	if resp.Pieces != 0 {
		t.Errorf("expected 0 pieces, got %d", resp.Pieces)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("expected output file to be created: %v", err)
	}
	if info.Size() != 0 {
		t.Errorf("expected empty output, got %d bytes", info.Size())
	}
}

func TestPiecePath(t *testing.T) {
	tests := []struct {
		n        int
		expected string
	}{
		{1, "f.bin.001"},
		{42, "f.bin.042"},
		{999, "f.bin.999"},
		{1000, "f.bin.1000"},
	}

	for _, tt := range tests {
		if got := PiecePath("f.bin", tt.n); got != tt.expected {
			t.Errorf("PiecePath(f.bin, %d) = %q, want %q", tt.n, got, tt.expected)
		}
	}
}
