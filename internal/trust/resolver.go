package trust

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
)

// FailureClass classifies why a lookup did not return records.
type FailureClass int

const (
	// FailNotFound means DNS answered authoritatively that the name does
	// not exist (NXDOMAIN).
	FailNotFound FailureClass = iota
	// FailNoData means the name exists but has no records of the requested
	// kind.
	FailNoData
	// FailTransient means the lookup itself failed (timeout, servfail,
	// unreachable resolver). It says nothing about the domain.
	FailTransient
)

func (c FailureClass) String() string {
	switch c {
	case FailNotFound:
		return "not_found"
	case FailNoData:
		return "no_data"
	case FailTransient:
		return "transient"
	default:
		return "unknown"
	}
}

// LookupError is the classified error returned by Resolver implementations.
type LookupError struct {
	Class FailureClass
	Name  string // queried name or address
	Err   error  // underlying error, may be nil for synthesized errors
}

func (e *LookupError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("lookup %s: %s: %v", e.Name, e.Class, e.Err)
	}
	return fmt.Sprintf("lookup %s: %s", e.Name, e.Class)
}

func (e *LookupError) Unwrap() error { return e.Err }

// ClassOf extracts the FailureClass from a resolver error. Errors that do not
// carry a class are treated as transient so they are never scored as a
// security signal.
func ClassOf(err error) FailureClass {
	var lerr *LookupError
	if errors.As(err, &lerr) {
		return lerr.Class
	}
	return FailTransient
}

// Resolver is the DNS capability the evaluator depends on. Implementations
// perform a single attempt per call, no retries and no caching, and return
// *LookupError with a FailureClass when no records could be produced.
type Resolver interface {
	// LookupTXT returns one string per TXT record, character-string
	// segments already concatenated (net.Resolver semantics).
	LookupTXT(ctx context.Context, name string) ([]string, error)
	LookupNS(ctx context.Context, name string) ([]string, error)
	// LookupCNAME returns a *LookupError with class FailNoData when the host
	// resolves but carries no CNAME record, unlike net.Resolver which
	// reports success with the canonical name.
	LookupCNAME(ctx context.Context, host string) (string, error)
	LookupHost(ctx context.Context, host string) ([]string, error)
	LookupMX(ctx context.Context, name string) ([]*net.MX, error)
	// LookupAddr is the reverse (PTR) lookup for a single address.
	LookupAddr(ctx context.Context, addr string) ([]string, error)
}

// NetResolver resolves through net.Resolver with a bounded wait per lookup.
type NetResolver struct {
	Timeout     time.Duration // per-lookup deadline; DefaultTimeout when zero
	Nameservers []string      // optional custom nameservers (host:port)
	Logger      *zap.SugaredLogger
}

// DefaultTimeout bounds a single lookup when NetResolver.Timeout is unset.
const DefaultTimeout = 10 * time.Second

var _ Resolver = (*NetResolver)(nil)

func (r *NetResolver) resolver() *net.Resolver {
	res := &net.Resolver{
		PreferGo: true,
	}
	if len(r.Nameservers) > 0 {
		dialer := &net.Dialer{
			Timeout: r.timeout(),
		}
		res.Dial = func(ctx context.Context, network, address string) (net.Conn, error) {
			// Use first nameserver for now
			return dialer.DialContext(ctx, network, r.Nameservers[0])
		}
	}
	return res
}

func (r *NetResolver) timeout() time.Duration {
	if r.Timeout > 0 {
		return r.Timeout
	}
	return DefaultTimeout
}

func (r *NetResolver) lookupCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout())
}

func (r *NetResolver) wrap(kind, name string, err error) error {
	if err == nil {
		return nil
	}
	werr := &LookupError{Class: classifyErr(err), Name: name, Err: err}
	if r.Logger != nil {
		r.Logger.Debugw("dns lookup failed", "type", kind, "name", name, "class", werr.Class.String(), "err", err)
	}
	return werr
}

// classifyErr maps resolver errors onto the FailureClass taxonomy. Anything
// not positively identified as "the record is absent" counts as transient.
func classifyErr(err error) FailureClass {
	var dnsErr *net.DNSError
	switch {
	case errors.As(err, &dnsErr) && dnsErr.IsNotFound:
		return FailNotFound
	case errors.As(err, &dnsErr) && (dnsErr.IsTemporary || dnsErr.IsTimeout):
		return FailTransient
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, os.ErrDeadlineExceeded):
		return FailTransient
	default:
		return FailTransient
	}
}

func (r *NetResolver) LookupTXT(ctx context.Context, name string) ([]string, error) {
	lctx, cancel := r.lookupCtx(ctx)
	defer cancel()
	recs, err := r.resolver().LookupTXT(lctx, name)
	return recs, r.wrap("txt", name, err)
}

func (r *NetResolver) LookupNS(ctx context.Context, name string) ([]string, error) {
	lctx, cancel := r.lookupCtx(ctx)
	defer cancel()
	recs, err := r.resolver().LookupNS(lctx, name)
	if err != nil {
		return nil, r.wrap("ns", name, err)
	}
	hosts := make([]string, 0, len(recs))
	for _, ns := range recs {
		hosts = append(hosts, ns.Host)
	}
	return hosts, nil
}

func (r *NetResolver) LookupCNAME(ctx context.Context, host string) (string, error) {
	lctx, cancel := r.lookupCtx(ctx)
	defer cancel()
	cname, err := r.resolver().LookupCNAME(lctx, host)
	if err != nil {
		return "", r.wrap("cname", host, err)
	}
	// net.Resolver reports the canonical name even when no CNAME record
	// exists; surface that as NoData so callers can tell the cases apart.
	if cname == host || cname == host+"." {
		return "", &LookupError{Class: FailNoData, Name: host}
	}
	return cname, nil
}

func (r *NetResolver) LookupHost(ctx context.Context, host string) ([]string, error) {
	lctx, cancel := r.lookupCtx(ctx)
	defer cancel()
	addrs, err := r.resolver().LookupHost(lctx, host)
	return addrs, r.wrap("host", host, err)
}

func (r *NetResolver) LookupMX(ctx context.Context, name string) ([]*net.MX, error) {
	lctx, cancel := r.lookupCtx(ctx)
	defer cancel()
	recs, err := r.resolver().LookupMX(lctx, name)
	return recs, r.wrap("mx", name, err)
}

func (r *NetResolver) LookupAddr(ctx context.Context, addr string) ([]string, error) {
	lctx, cancel := r.lookupCtx(ctx)
	defer cancel()
	names, err := r.resolver().LookupAddr(lctx, addr)
	if err != nil {
		return nil, r.wrap("addr", addr, err)
	}
	for i, s := range names {
		names[i] = strings.TrimSuffix(s, ".")
	}
	return names, nil
}
