// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reservoir

import (
	"errors"

	"github.com/sirupsen/logrus"
)

// Log is the logger used by the package.  It logs at Warn level by default:
// set its level to Info or Debug to follow builds.
var Log = newLogger()

func newLogger() *logrus.Logger {
	lg := logrus.New()
	lg.SetLevel(logrus.WarnLevel)
	return lg
}

var (
	// ErrInvalidConfig is returned for an inconsistent instance definition
	ErrInvalidConfig = errors.New("reservoir: invalid instance definition")

	// ErrIncompatibleActivation is returned when a neuron group's activation
	// cannot serve its role
	ErrIncompatibleActivation = errors.New("reservoir: activation incompatible with neuron role")
)
