// Package models registers the builtin model types with the default
// registry. Import it for its side effects:
//
//	import _ "github.com/kfarnes/mast/models"
//
// Registration happens at load time, before any configuration is resolved.
package models

import (
	"github.com/kfarnes/mast/core/model"
	"github.com/kfarnes/mast/models/knn"
	"github.com/kfarnes/mast/models/linear"
	"github.com/kfarnes/mast/models/pipeline"
	"github.com/kfarnes/mast/models/scaler"
)

func init() {
	model.MustRegister(linear.TypeName, linear.NewFromConf)
	model.MustRegister(knn.TypeName, knn.NewFromConf)
	model.MustRegister(scaler.TypeName, scaler.NewFromConf)
	model.MustRegister(pipeline.TypeName, pipeline.NewFromConf)
}
