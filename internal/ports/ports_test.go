package ports

import "testing"

// S3 — shift-register scenario from spec.md §8.
func TestShiftRegisterScenario(t *testing.T) {
	p := New()

	p.Out(4, 0xAB)
	if p.Shift != 0xAB00 {
		t.Fatalf("after OUT 4,0xAB: SHIFT = 0x%04X, want 0xAB00", p.Shift)
	}

	p.Out(4, 0xCD)
	if p.Shift != 0xCDAB {
		t.Fatalf("after OUT 4,0xCD: SHIFT = 0x%04X, want 0xCDAB", p.Shift)
	}

	p.Out(2, 4)
	if p.ShiftOffset != 4 {
		t.Fatalf("after OUT 2,4: SHIFT_OFFSET = %d, want 4", p.ShiftOffset)
	}

	got := p.In(3)
	if got != 0xDA {
		t.Fatalf("IN 3 = 0x%02X, want 0xDA", got)
	}
}

func TestInp1Bit3AlwaysSet(t *testing.T) {
	p := New()
	if p.INP1&INP1P1Start != 0 {
		t.Fatal("INP1 should start with no keys held")
	}
	if p.INP1&0x08 == 0 {
		t.Fatal("INP1 bit 3 should be wired to always-1")
	}
}

type fakeSounder struct {
	onceCalls []SoundID
	loops     int
	stops     []int
	nextChan  int
}

func (f *fakeSounder) PlayOnce(id SoundID) { f.onceCalls = append(f.onceCalls, id) }
func (f *fakeSounder) PlayLoop(SoundID) int {
	f.loops++
	f.nextChan++
	return f.nextChan
}
func (f *fakeSounder) Stop(channel int) { f.stops = append(f.stops, channel) }

func TestPort3UFOLoopStartsAndStopsOnEdges(t *testing.T) {
	p := New()
	s := &fakeSounder{}
	p.SetSounder(s)

	p.Out(3, 0x01) // rising edge on bit 0
	if s.loops != 1 {
		t.Fatalf("loops = %d, want 1", s.loops)
	}

	p.Out(3, 0x00) // falling edge on bit 0
	if len(s.stops) != 1 {
		t.Fatalf("stops = %d, want 1", len(s.stops))
	}
}

func TestPort3OneShotsFireOnlyOnRisingEdge(t *testing.T) {
	p := New()
	s := &fakeSounder{}
	p.SetSounder(s)

	p.Out(3, 0x02) // bit 1 rising: shot
	p.Out(3, 0x02) // held, no new edge
	p.Out(3, 0x00) // falling, no one-shot trigger

	if len(s.onceCalls) != 1 || s.onceCalls[0] != SoundShot {
		t.Fatalf("onceCalls = %v, want exactly one SoundShot", s.onceCalls)
	}
}

func TestPort5FleetMovementEdges(t *testing.T) {
	p := New()
	s := &fakeSounder{}
	p.SetSounder(s)

	p.Out(5, 0x01)
	p.Out(5, 0x03) // bit1 rising too
	p.Out(5, 0x10) // bit4 (UFO die) rising, others falling

	want := []SoundID{SoundFleetMove1, SoundFleetMove2, SoundUFODie}
	if len(s.onceCalls) != len(want) {
		t.Fatalf("onceCalls = %v, want %v", s.onceCalls, want)
	}
	for i, id := range want {
		if s.onceCalls[i] != id {
			t.Fatalf("onceCalls[%d] = %v, want %v", i, s.onceCalls[i], id)
		}
	}
}

func TestNoSounderIsSafeNoop(t *testing.T) {
	p := New()
	p.Out(3, 0x0f) // exercises every edge with the default no-op sounder
}

// C3 — unknown IN/OUT ports are fatal, not silently ignored.
func TestUnknownInPortAborts(t *testing.T) {
	p := New()
	defer func() {
		if recover() == nil {
			t.Fatal("expected IN on an unknown port to panic")
		}
	}()
	p.In(7)
}

func TestUnknownOutPortAborts(t *testing.T) {
	p := New()
	defer func() {
		if recover() == nil {
			t.Fatal("expected OUT on an unknown port to panic")
		}
	}()
	p.Out(7, 0x00)
}
