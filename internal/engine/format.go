package engine

import "github.com/ionwell/formulation-service/internal/model"

// DetectFormat classifies a raw intake value. A value is legacy iff it
// exactly matches one of the seven bucket tokens; everything else is
// numeric. There is no error path here — malformed numeric strings are
// caught by the validator and fall back inside the normalizer.
func DetectFormat(value string) model.IntakeFormat {
	if _, ok := legacyBucketMidpoints[value]; ok {
		return model.FormatLegacy
	}
	return model.FormatNumeric
}
