package trust

import (
	"context"
	"errors"
	"net"
	"os"
	"testing"
)

func TestClassifyErr(t *testing.T) {
	testCases := []struct {
		name string
		err  error
		want FailureClass
	}{
		{
			name: "NXDOMAIN",
			err:  &net.DNSError{Err: "no such host", Name: "gone.example.com", IsNotFound: true},
			want: FailNotFound,
		},
		{
			name: "Temporary server failure",
			err:  &net.DNSError{Err: "server misbehaving", Name: "example.com", IsTemporary: true},
			want: FailTransient,
		},
		{
			name: "Lookup timeout",
			err:  &net.DNSError{Err: "i/o timeout", Name: "example.com", IsTimeout: true},
			want: FailTransient,
		},
		{
			name: "Context deadline",
			err:  context.DeadlineExceeded,
			want: FailTransient,
		},
		{
			name: "OS deadline",
			err:  os.ErrDeadlineExceeded,
			want: FailTransient,
		},
		{
			name: "Unclassifiable error",
			err:  errors.New("something odd"),
			want: FailTransient,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := classifyErr(tc.err); got != tc.want {
				t.Errorf("expected %s, got %s", tc.want, got)
			}
		})
	}
}

func TestClassOf(t *testing.T) {
	lerr := &LookupError{Class: FailNoData, Name: "www.example.com"}
	if got := ClassOf(lerr); got != FailNoData {
		t.Errorf("expected no_data, got %s", got)
	}
	wrapped := &LookupError{Class: FailNotFound, Name: "x", Err: errors.New("inner")}
	if got := ClassOf(wrapped); got != FailNotFound {
		t.Errorf("expected not_found, got %s", got)
	}
	if got := ClassOf(errors.New("plain")); got != FailTransient {
		t.Errorf("plain errors must classify as transient, got %s", got)
	}
}

func TestLookupError_Unwrap(t *testing.T) {
	inner := &net.DNSError{Err: "no such host", Name: "x", IsNotFound: true}
	lerr := &LookupError{Class: FailNotFound, Name: "x", Err: inner}

	var dnsErr *net.DNSError
	if !errors.As(lerr, &dnsErr) {
		t.Fatal("expected LookupError to unwrap to *net.DNSError")
	}
	if lerr.Error() == "" {
		t.Error("expected non-empty error string")
	}
}

func TestFailureClassStrings(t *testing.T) {
	want := map[FailureClass]string{
		FailNotFound:  "not_found",
		FailNoData:    "no_data",
		FailTransient: "transient",
	}
	for class, s := range want {
		if class.String() != s {
			t.Errorf("expected %q, got %q", s, class.String())
		}
	}
}
