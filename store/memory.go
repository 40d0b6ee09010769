package store

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/coreindex/idxmaster/cluster"
	"github.com/coreindex/idxmaster/cmn"
)

// memMapperService is the in-process MapperService used by the daemon's
// default LocalIndexStore and by tests. Mirrors the reference
// architecture's pattern of guarding small per-bucket maps with their own
// mutex rather than relying on the caller's serialization.
type memMapperService struct {
	mtx      sync.Mutex
	mappings cluster.Mappings
}

func newMemMapperService() *memMapperService {
	return &memMapperService{mappings: cluster.NewMappings()}
}

// Add installs typ's source after confirming it parses as JSON — the
// wire format Elasticsearch-style type mappings use. A non-JSON source
// is what a real mapping parser would reject.
func (m *memMapperService) Add(typ, source string) error {
	if !json.Valid([]byte(source)) {
		return fmt.Errorf("mapping source for type %q is not valid JSON", typ)
	}
	m.mtx.Lock()
	defer m.mtx.Unlock()
	m.mappings[typ] = source
	return nil
}

func (m *memMapperService) Mappings() cluster.Mappings {
	m.mtx.Lock()
	defer m.mtx.Unlock()
	return m.mappings.Clone()
}

type memIndexService struct {
	mapper *memMapperService
}

func (s *memIndexService) MapperService() MapperService { return s.mapper }

// MemLocalIndexStore is a process-local, non-persistent LocalIndexStore:
// every index's resources live only in a map guarded by a mutex. It exists
// to let cmd/idxmasterd run and the master test suites exercise a real
// LocalIndexStore without a filesystem or search engine dependency; a
// production deployment supplies its own implementation backed by actual
// on-disk shard storage.
type MemLocalIndexStore struct {
	mtx     sync.Mutex
	indices map[string]*memIndexService
}

func NewMemLocalIndexStore() *MemLocalIndexStore {
	return &MemLocalIndexStore{indices: make(map[string]*memIndexService)}
}

func (s *MemLocalIndexStore) Create(name string, settings map[string]string, localNodeID string) (IndexService, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	if _, exists := s.indices[name]; exists {
		return nil, cmn.NewErrIndexAlreadyExists(name)
	}
	svc := &memIndexService{mapper: newMemMapperService()}
	s.indices[name] = svc
	return svc, nil
}

func (s *MemLocalIndexStore) Delete(name string) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	if _, exists := s.indices[name]; !exists {
		return cmn.NewErrIndexDoesNotExist(name)
	}
	delete(s.indices, name)
	return nil
}

func (s *MemLocalIndexStore) IndexServiceSafe(name string) (IndexService, bool) {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	svc, ok := s.indices[name]
	return svc, ok
}
