// Package seeds provides the default curriculum and achievement catalog.
package seeds

import _ "embed"

//go:embed curriculum.yml
var Curriculum []byte

//go:embed achievements.yml
var Achievements []byte
