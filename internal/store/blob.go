package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/glucoscope/glucoscope/internal/objstore"
	"github.com/glucoscope/glucoscope/pkg/health"
	"github.com/glucoscope/glucoscope/pkg/scoring"
)

// BlobPrefix is the key prefix under which Blob writes records.
const BlobPrefix = "assessments/"

// Blob stores one JSON object per record in an objstore.Client. Each object
// carries a sequence number; List orders by it alone, newest first.
// Creates are serialized within the process only.
type Blob struct {
	client objstore.Client
	opts   options

	mu        sync.Mutex
	seq       int64
	seqLoaded bool
}

type blobObject struct {
	Seq    int64  `json:"seq"`
	Record Record `json:"record"`
}

// NewBlob creates a Blob store over client.
func NewBlob(client objstore.Client, opts ...Option) *Blob {
	return &Blob{client: client, opts: buildOptions(opts)}
}

func blobKey(id string) string {
	return BlobPrefix + id + ".json"
}

// validBlobID rejects ids that would escape the key prefix.
func validBlobID(id string) bool {
	return id != "" && !strings.ContainsAny(id, `/\`) && !strings.Contains(id, "..")
}

func (s *Blob) Create(ctx context.Context, m health.Metrics, a scoring.Assessment) (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.seqLoaded {
		objs, err := s.loadAll(ctx)
		if err != nil {
			return Record{}, fmt.Errorf("create record: %w", err)
		}
		for _, o := range objs {
			s.seq = max(s.seq, o.Seq)
		}
		s.seqLoaded = true
	}

	id := s.opts.newID()
	if !validBlobID(id) {
		return Record{}, fmt.Errorf("create record: invalid id %q", id)
	}
	if _, err := s.client.Get(ctx, blobKey(id)); err == nil {
		return Record{}, fmt.Errorf("create record: id %q already in use", id)
	} else if !errors.Is(err, objstore.ErrNotFound) {
		return Record{}, fmt.Errorf("create record: %w", err)
	}

	obj := blobObject{Seq: s.seq + 1, Record: newRecord(id, m, a, s.opts.now())}
	data, err := json.Marshal(obj)
	if err != nil {
		return Record{}, fmt.Errorf("encode record: %w", err)
	}
	if err := s.client.Put(ctx, blobKey(id), data); err != nil {
		return Record{}, fmt.Errorf("create record: %w", err)
	}
	s.seq = obj.Seq
	return obj.Record, nil
}

func (s *Blob) Get(ctx context.Context, id string) (Record, error) {
	if !validBlobID(id) {
		return Record{}, fmt.Errorf("get record %s: %w", id, ErrNotFound)
	}
	obj, err := s.load(ctx, blobKey(id))
	if errors.Is(err, objstore.ErrNotFound) {
		return Record{}, fmt.Errorf("get record %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return Record{}, fmt.Errorf("get record %s: %w", id, err)
	}
	return obj.Record, nil
}

func (s *Blob) List(ctx context.Context) ([]Record, error) {
	objs, err := s.loadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	sort.Slice(objs, func(i, j int) bool { return objs[i].Seq > objs[j].Seq })

	out := make([]Record, len(objs))
	for i, o := range objs {
		out[i] = o.Record
	}
	return out, nil
}

func (s *Blob) load(ctx context.Context, key string) (blobObject, error) {
	data, err := s.client.Get(ctx, key)
	if err != nil {
		return blobObject{}, err
	}
	var obj blobObject
	if err := json.Unmarshal(data, &obj); err != nil {
		return blobObject{}, fmt.Errorf("decode %s: %w", key, err)
	}
	return obj, nil
}

func (s *Blob) loadAll(ctx context.Context) ([]blobObject, error) {
	keys, err := s.client.List(ctx, BlobPrefix)
	if err != nil {
		return nil, err
	}
	objs := make([]blobObject, 0, len(keys))
	for _, key := range keys {
		if !strings.HasSuffix(key, ".json") {
			continue
		}
		obj, err := s.load(ctx, key)
		if err != nil {
			return nil, err
		}
		objs = append(objs, obj)
	}
	return objs, nil
}
