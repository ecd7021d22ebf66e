package validator

import (
	"context"

	"github.com/Alicoder001/agent-skills/pkg/logger"
	"github.com/Alicoder001/agent-skills/pkg/utils"
)

// checkEncoding reports every file below the root that contains a NUL
// byte. Directories matching an ignore pattern are not entered; symlinked
// files are read through. An unreadable directory is one error and the
// scan continues.
func (v *Validator) checkEncoding(ctx context.Context, res *Result) {
	files, walkErrs, err := utils.WalkFiles(v.cfg.Root, v.ignored)
	if err != nil {
		res.Errorf(KindEncodingViolation, v.cfg.Root, "Unable to scan files: %v", err)
		return
	}
	for _, we := range walkErrs {
		rel := v.rel(we.Dir)
		res.Errorf(KindEncodingViolation, rel, "Unable to scan %s: %v", rel, we.Err)
	}
	logger.G(ctx).WithField("files", len(files)).Debug("scanning for NUL bytes")

	for _, f := range files {
		if ctx.Err() != nil {
			return
		}
		rel := v.rel(f)
		hasNul, err := utils.HasNulByte(f)
		if err != nil {
			res.Errorf(KindEncodingViolation, rel, "Unable to read %s: %v", rel, err)
			continue
		}
		if hasNul {
			res.Errorf(KindEncodingViolation, rel, "NUL byte detected: %s", rel)
		}
	}
}
