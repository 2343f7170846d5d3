package records

import _ "embed"

// Sample is a well-formed response covering every question type. The
// offline mock provider replies with it.
//
//go:embed sample.txt
var Sample string
