// Package model defines the capability contract every concrete model
// implementation must satisfy, the error taxonomy shared by the factory and
// the implementations, and the process-wide registry used to build models
// from declarative configuration.
//
// Calling code depends only on the Model interface; which numeric backend
// implements a given type name is resolved at construction time through the
// registry. Model instances are not safe for concurrent use: callers must
// serialize Fit and Predict on a shared instance.
package model
