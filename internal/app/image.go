package app

import (
	"context"
	"fmt"

	"github.com/awamegit/spotrm-api-go/internal/artifact"
)

// RunImage fetches the SVG highlighting the sample alert and saves it as
// smilesImage_<date>.svg in the output directory.
func (r *Runner) RunImage(ctx context.Context) error {
	data, err := r.client.Image(ctx, SampleImageSMILES, SampleImageSmartsID, r.cred)
	if err != nil {
		return r.check("image", err)
	}

	info, err := artifact.InspectSVG(data)
	if err != nil {
		r.log.WarnObj("image payload is not a recognizable svg", "image_meta", map[string]any{
			"bytes": len(data),
			"error": err.Error(),
		})
	} else {
		r.log.InfoObj("image received", "image_meta", info)
	}

	path, err := artifact.SaveImage(r.cfg.OutputDir, r.now(), data)
	if err != nil {
		return fmt.Errorf("save image: %w", err)
	}
	r.printer.ImageSaved(path)
	return r.printer.Err()
}
