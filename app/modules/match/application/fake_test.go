package matchservice

import "time"

type FakeClock struct {
	NowFunc func() time.Time
}

func (f *FakeClock) Now() time.Time {
	if f.NowFunc != nil {
		return f.NowFunc()
	}
	return time.Time{}
}

func fixedClock(t time.Time) *FakeClock {
	return &FakeClock{NowFunc: func() time.Time { return t }}
}
