package resolver

import (
	"fmt"
	"testing"
)

func newBenchFactory(b *testing.B, n int) *Factory {
	b.Helper()
	f := New()
	s := f.OpenAdminSession()
	defer s.Close()
	if _, err := s.Create("/", "content", nil); err != nil {
		b.Fatal(err)
	}
	for i := 0; i < n; i++ {
		if _, err := s.Create("/content", fmt.Sprintf("page-%d", i), Properties{"index": int64(i)}); err != nil {
			b.Fatal(err)
		}
	}
	if err := s.Commit(); err != nil {
		b.Fatal(err)
	}
	return f
}

func BenchmarkGet(b *testing.B) {
	f := newBenchFactory(b, 1000)
	s := f.OpenSession(nil)
	defer s.Close()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, ok := s.Get("/content/page-500"); !ok {
			b.Fatal("missing resource")
		}
	}
}

func BenchmarkListChildren(b *testing.B) {
	f := newBenchFactory(b, 1000)
	s := f.OpenSession(nil)
	defer s.Close()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if got := s.ListChildren("/content"); len(got) != 1000 {
			b.Fatalf("expected 1000 children, got %d", len(got))
		}
	}
}

func BenchmarkCommit(b *testing.B) {
	f := newBenchFactory(b, 0)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s := f.OpenSession(nil)
		if _, err := s.Create("/content", fmt.Sprintf("bench-%d", i), Properties{"n": int64(i)}); err != nil {
			b.Fatal(err)
		}
		if err := s.Commit(); err != nil {
			b.Fatal(err)
		}
		s.Close()
	}
}
