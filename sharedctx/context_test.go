// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package sharedctx_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/faktgo/faktgo/metadata"
	"github.com/faktgo/faktgo/sharedctx"
)

func TestIsConfiguredAnnotationDefault(t *testing.T) {
	ctx := sharedctx.New(metadata.FaktOptions{})
	assert.True(t, ctx.IsConfiguredAnnotation(metadata.DefaultAnnotationFQN))
	assert.False(t, ctx.IsConfiguredAnnotation("com/example/Other"))
}

func TestIsConfiguredAnnotationCustom(t *testing.T) {
	ctx := sharedctx.New(metadata.FaktOptions{FakeAnnotations: []string{"com/example/Custom"}})
	assert.False(t, ctx.IsConfiguredAnnotation(metadata.DefaultAnnotationFQN))
	assert.True(t, ctx.IsConfiguredAnnotation("com/example/Custom"))
}

func TestLoggerWithNoSpanIsNoOp(t *testing.T) {
	ctx := sharedctx.New(metadata.FaktOptions{})
	logger := ctx.Logger(nil)
	assert.NotNil(t, logger)
}
