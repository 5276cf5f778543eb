package trust

import (
	"context"
	"net"
	"slices"
	"sync"
)

// MockResolver is a Resolver for tests. Set records in the fields, keyed by
// the exact name a lookup asks for. Names listed in NotFound return a
// FailNotFound error, names in Transient a FailTransient error, in the form
// "type name", e.g. "txt _dmarc.example.com". Lookups on names with no entry
// anywhere return FailNotFound.
//
// Call counts are tracked per lookup type so tests can assert that a lookup
// was, or was not, attempted.
type MockResolver struct {
	TXT   map[string][]string
	NS    map[string][]string
	CNAME map[string]string
	A     map[string][]string
	MX    map[string][]*net.MX
	PTR   map[string][]string

	NotFound  []string // "type name" entries answered with FailNotFound
	NoData    []string // "type name" entries answered with FailNoData
	Transient []string // "type name" entries answered with FailTransient

	AllTransient bool // every lookup fails with FailTransient

	mu    sync.Mutex
	calls map[string]int
}

var _ Resolver = (*MockResolver)(nil)

// Calls returns how many lookups of the given type ("txt", "ns", "cname",
// "host", "mx", "addr") have been issued.
func (r *MockResolver) Calls(typ string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls[typ]
}

func (r *MockResolver) record(typ string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.calls == nil {
		r.calls = make(map[string]int)
	}
	r.calls[typ]++
}

func (r *MockResolver) fail(typ, name string) error {
	key := typ + " " + name
	switch {
	case r.AllTransient:
		return &LookupError{Class: FailTransient, Name: name}
	case slices.Contains(r.Transient, key):
		return &LookupError{Class: FailTransient, Name: name}
	case slices.Contains(r.NoData, key):
		return &LookupError{Class: FailNoData, Name: name}
	case slices.Contains(r.NotFound, key):
		return &LookupError{Class: FailNotFound, Name: name}
	default:
		return nil
	}
}

func (r *MockResolver) LookupTXT(ctx context.Context, name string) ([]string, error) {
	r.record("txt")
	if err := r.fail("txt", name); err != nil {
		return nil, err
	}
	recs, ok := r.TXT[name]
	if !ok {
		return nil, &LookupError{Class: FailNotFound, Name: name}
	}
	return recs, nil
}

func (r *MockResolver) LookupNS(ctx context.Context, name string) ([]string, error) {
	r.record("ns")
	if err := r.fail("ns", name); err != nil {
		return nil, err
	}
	recs, ok := r.NS[name]
	if !ok {
		return nil, &LookupError{Class: FailNotFound, Name: name}
	}
	return recs, nil
}

func (r *MockResolver) LookupCNAME(ctx context.Context, host string) (string, error) {
	r.record("cname")
	if err := r.fail("cname", host); err != nil {
		return "", err
	}
	target, ok := r.CNAME[host]
	if !ok {
		return "", &LookupError{Class: FailNotFound, Name: host}
	}
	return target, nil
}

func (r *MockResolver) LookupHost(ctx context.Context, host string) ([]string, error) {
	r.record("host")
	if err := r.fail("host", host); err != nil {
		return nil, err
	}
	addrs, ok := r.A[host]
	if !ok {
		return nil, &LookupError{Class: FailNotFound, Name: host}
	}
	return addrs, nil
}

func (r *MockResolver) LookupMX(ctx context.Context, name string) ([]*net.MX, error) {
	r.record("mx")
	if err := r.fail("mx", name); err != nil {
		return nil, err
	}
	recs, ok := r.MX[name]
	if !ok {
		return nil, &LookupError{Class: FailNotFound, Name: name}
	}
	return recs, nil
}

func (r *MockResolver) LookupAddr(ctx context.Context, addr string) ([]string, error) {
	r.record("addr")
	if err := r.fail("addr", addr); err != nil {
		return nil, err
	}
	names, ok := r.PTR[addr]
	if !ok {
		return nil, &LookupError{Class: FailNotFound, Name: addr}
	}
	return names, nil
}
