package spec

import "testing"

func BenchmarkAtomic(b *testing.B) {
	p := even()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = p.IsSatisfiedBy(i)
	}
}

func BenchmarkCompositeTree(b *testing.B) {
	tree := Of(even()).And(positive()).Or(Not(small())).And(Any(even(), small()))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = tree.IsSatisfiedBy(i)
	}
}

func BenchmarkExplain(b *testing.B) {
	tree := Of(even()).And(positive()).Or(Not(small())).Unwrap()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = Explain(tree, i)
	}
}
