package message

import "testing"

var benchDatagram = []byte{
	0x48, 0x02, 0x12, 0x34, 1, 2, 3, 4, 5, 6, 7, 8,
	0xb4, 't', 'e', 'm', 'p', 0x03, 'r', 'o', 'w',
	0x11, 0x32, 0xd1, 0xe5, 0x02,
	0xff, '{', '"', 'v', '"', ':', '1', '}',
}

func BenchmarkParse(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := Parse(benchDatagram); err != nil {
			b.Fatalf("cannot parse: %v", err)
		}
	}
}

func BenchmarkIterateOptions(b *testing.B) {
	v, err := Parse(benchDatagram)
	if err != nil {
		b.Fatalf("cannot parse: %v", err)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		n := 0
		for it := v.Options(); !it.End(); it = it.Next() {
			n++
		}
		if n != 4 {
			b.Fatalf("unexpected option count %v", n)
		}
	}
}

func BenchmarkPathOption(b *testing.B) {
	for i := uint32(0); i < uint32(b.N); i++ {
		options := make(Options, 0, 10)
		options, err := options.SetPath("a/b/c")
		if err != nil {
			b.Fatalf("unexpected error %v", err)
		}
		path, err := options.Path()
		if err != nil || path != "/a/b/c" {
			b.Fatalf("unexpected path %v", path)
		}
	}
}
