// Copyright 2026 The Timeflow Authors
// SPDX-License-Identifier: Apache-2.0

package timectrl

// advanceSuppressor keeps the host's raw interval counter below the
// ten-minute advance threshold while freeze is active, without ever
// zeroing it. Observers of the counter (weather shaders, ambient
// loops) still see a small, live, slowly varying value; the counter
// simply never reaches the threshold that would advance the displayed
// time.
type advanceSuppressor struct {
	// pending marks that this tick's host update must be overwritten.
	pending bool

	// savedInterval is the clamped pre-update counter value written
	// back after the host update.
	savedInterval int
}

// preUpdate runs before the host applies its own clock update.
// rawInterval is the counter value as it stands entering the host
// update (a cutscene restore earlier in the same tick supersedes the
// context's captured value). When suppress is false, the host's
// bookkeeping is left alone entirely.
func (s *advanceSuppressor) preUpdate(rawInterval int, suppress bool) {
	if !suppress {
		s.pending = false
		return
	}
	s.pending = true
	s.savedInterval = rawInterval
	if s.savedInterval > suppressClampMS {
		s.savedInterval = suppressClampMS
	}
}

// postUpdate runs after the host applied its update. The overwrite
// undoes whatever the host added this tick; because savedInterval is
// clamped to suppressClampMS, even a tick where the host added a
// large elapsed delta cannot have crossed the advance threshold
// between the host update and this overwrite on a ~60 Hz loop.
func (s *advanceSuppressor) postUpdate(host HostClock) {
	if !s.pending {
		return
	}
	host.SetRawInterval(s.savedInterval)
	s.pending = false
}
