package application

import "time"

// Clock dipakai di semua tempat yang butuh "sekarang": timestamp record,
// window expiry dokumen, header backup.
type Clock interface {
	Now() time.Time
}

// SystemClock implementasi default, selalu UTC
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now().UTC() }

// FixedClock selalu balikin waktu yang sama, buat test
type FixedClock time.Time

func (c FixedClock) Now() time.Time { return time.Time(c) }
