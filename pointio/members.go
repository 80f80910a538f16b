package pointio

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/lloyd/blobstore"
	"github.com/hupe1980/lloyd/internal/conv"
	"github.com/hupe1980/lloyd/internal/hash"
)

var membersMagic = [4]byte{'L', 'L', 'M', 'B'}

// ErrInvalidMembers is returned when a membership blob is malformed.
var ErrInvalidMembers = errors.New("invalid membership blob")

// MembershipSink writes per-cluster point index sets to a blob.
type MembershipSink struct {
	store blobstore.BlobStore
	name  string
	opts  options
}

// NewMembershipSink returns a MembershipSink writing to the named blob.
// Only the compression options apply.
func NewMembershipSink(store blobstore.BlobStore, name string, optFns ...Option) *MembershipSink {
	return &MembershipSink{
		store: store,
		name:  name,
		opts:  newOptions(optFns),
	}
}

// Name returns the blob name.
func (s *MembershipSink) Name() string { return s.name }

// WriteMembers serializes members and publishes the blob.
func (s *MembershipSink) WriteMembers(ctx context.Context, members []*roaring.Bitmap) error {
	_, compression := Detect(s.name, FormatCSV, s.opts.compression)
	return writeBlob(ctx, s.store, s.name, compression, s.opts, func(w io.Writer) error {
		return EncodeMembers(w, members)
	})
}

// EncodeMembers writes the "LLMB" magic, the cluster count, the
// length-prefixed portable serialization of every bitmap and finally a
// CRC32C of everything before it. A nil bitmap is written as an empty one.
func EncodeMembers(w io.Writer, members []*roaring.Bitmap) error {
	h := hash.NewCRC32C()
	mw := io.MultiWriter(w, h)

	k, err := conv.IntToUint32(len(members))
	if err != nil {
		return err
	}
	if _, err := mw.Write(membersMagic[:]); err != nil {
		return err
	}
	if err := binary.Write(mw, binary.LittleEndian, k); err != nil {
		return err
	}
	for _, bm := range members {
		if bm == nil {
			bm = roaring.New()
		}
		data, err := bm.ToBytes()
		if err != nil {
			return err
		}
		n, err := conv.IntToUint32(len(data))
		if err != nil {
			return err
		}
		if err := binary.Write(mw, binary.LittleEndian, n); err != nil {
			return err
		}
		if _, err := mw.Write(data); err != nil {
			return err
		}
	}
	return binary.Write(w, binary.LittleEndian, h.Sum32())
}

// DecodeMembers reads bitmaps written by EncodeMembers.
func DecodeMembers(r io.Reader) ([]*roaring.Bitmap, error) {
	h := hash.NewCRC32C()
	tr := io.TeeReader(r, h)

	var magic [4]byte
	if _, err := io.ReadFull(tr, magic[:]); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMembers, err)
	}
	if magic != membersMagic {
		return nil, fmt.Errorf("%w: bad magic %q", ErrInvalidMembers, magic[:])
	}

	var k uint32
	if err := binary.Read(tr, binary.LittleEndian, &k); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMembers, err)
	}
	count, err := conv.Uint32ToInt(k)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMembers, err)
	}

	members := make([]*roaring.Bitmap, 0, min(count, 1<<16))
	var buf bytes.Buffer
	for i := range count {
		var n uint32
		if err := binary.Read(tr, binary.LittleEndian, &n); err != nil {
			return nil, fmt.Errorf("%w: cluster %d: %v", ErrInvalidMembers, i, err)
		}
		buf.Reset()
		if _, err := io.CopyN(&buf, tr, int64(n)); err != nil {
			return nil, fmt.Errorf("%w: cluster %d: %v", ErrInvalidMembers, i, err)
		}
		bm := roaring.New()
		if err := bm.UnmarshalBinary(buf.Bytes()); err != nil {
			return nil, fmt.Errorf("%w: cluster %d: %v", ErrInvalidMembers, i, err)
		}
		members = append(members, bm)
	}

	want := h.Sum32()
	var got uint32
	if err := binary.Read(r, binary.LittleEndian, &got); err != nil {
		return nil, fmt.Errorf("%w: checksum: %v", ErrInvalidMembers, err)
	}
	if got != want {
		return nil, fmt.Errorf("%w: checksum mismatch", ErrInvalidMembers)
	}
	return members, nil
}

// ReadMembers loads a membership blob from store.
func ReadMembers(ctx context.Context, store blobstore.BlobStore, name string, optFns ...Option) ([]*roaring.Bitmap, error) {
	opts := newOptions(optFns)
	_, compression := Detect(name, FormatCSV, opts.compression)

	blob, err := store.Open(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", name, err)
	}
	defer blob.Close()

	raw, err := blobstore.NewReader(ctx, blob)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	defer raw.Close()

	r, err := decompress(opts.rc.Reader(ctx, raw), compression)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	defer r.Close()

	members, err := DecodeMembers(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return members, nil
}
