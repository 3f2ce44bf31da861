package world

import "testing"

func BenchmarkBuildVolume(b *testing.B) {
	p := defaultParams(32)
	noise := NewNoiseField(NewPerlinNoise(1))
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = BuildVolume(p, noise)
	}
}

func BenchmarkBuildVolumeParallel(b *testing.B) {
	p := defaultParams(32)
	p.Workers = 4
	noise := NewNoiseField(NewPerlinNoise(1))
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = BuildVolume(p, noise)
	}
}

func BenchmarkNoiseFieldSample(b *testing.B) {
	f := NewNoiseField(NewPerlinNoise(1))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = f.Sample(float64(i%97)*0.1, float64(i%89)*0.1, float64(i%83)*0.1)
	}
}
