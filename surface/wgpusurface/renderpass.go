// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package wgpusurface

import (
	"errors"
	"fmt"

	"github.com/gogpu/wgpu"

	"github.com/gogpu/renderview"
)

// Errors returned by the render pass bridge.
var (
	// ErrForeignTexture is returned when a color attachment's texture was
	// not produced by this package.
	ErrForeignTexture = errors.New("wgpusurface: attachment texture is not a wgpu surface texture")

	// ErrTextureReleased is returned when a color attachment refers to a
	// drawable that was already presented or discarded.
	ErrTextureReleased = errors.New("wgpusurface: attachment texture already released")
)

// RenderPassDescriptor translates rpd into a wgpu render pass descriptor.
// Every color attachment must use a texture obtained from a Provider.
func RenderPassDescriptor(rpd *renderview.RenderPassDescriptor) (*wgpu.RenderPassDescriptor, error) {
	if rpd == nil {
		return nil, errors.New("wgpusurface: nil render pass descriptor")
	}

	out := &wgpu.RenderPassDescriptor{
		Label:            "renderview",
		ColorAttachments: make([]wgpu.RenderPassColorAttachment, 0, len(rpd.ColorAttachments)),
	}
	for i, ca := range rpd.ColorAttachments {
		tex, ok := ca.Texture.(*Texture)
		if !ok {
			return nil, fmt.Errorf("%w: attachment %d is %T", ErrForeignTexture, i, ca.Texture)
		}
		if tex.view == nil {
			return nil, fmt.Errorf("%w: attachment %d", ErrTextureReleased, i)
		}
		out.ColorAttachments = append(out.ColorAttachments, wgpu.RenderPassColorAttachment{
			View:       tex.view,
			LoadOp:     ca.LoadOp,
			StoreOp:    ca.StoreOp,
			ClearValue: ca.ClearValue,
		})
	}
	return out, nil
}

// BeginRenderPass begins a render pass on encoder described by rpd.
//
// Example:
//
//	func (r *renderer) Draw(v *renderview.View) {
//	    rpd := v.CurrentRenderPassDescriptor()
//	    if rpd == nil {
//	        return
//	    }
//	    enc, _ := r.device.CreateCommandEncoder(nil)
//	    pass, err := wgpusurface.BeginRenderPass(enc, rpd)
//	    ...
//	    _ = pass.End()
//	    cmd, _ := enc.Finish()
//	    _, _ = r.device.Queue().Submit(cmd)
//	    _ = rpd.Drawable.Present()
//	}
func BeginRenderPass(encoder *wgpu.CommandEncoder, rpd *renderview.RenderPassDescriptor) (*wgpu.RenderPassEncoder, error) {
	desc, err := RenderPassDescriptor(rpd)
	if err != nil {
		return nil, err
	}
	pass, err := encoder.BeginRenderPass(desc)
	if err != nil {
		return nil, fmt.Errorf("wgpusurface: begin render pass: %w", err)
	}
	return pass, nil
}

// ClearDelegate is a renderview.Delegate that clears every frame to the
// view's clear color and presents it. It is useful as a placeholder while
// bringing up a surface.
type ClearDelegate struct {
	// Device records and submits the clear pass.
	Device *wgpu.Device

	// OnSizeChange is called, if set, when the drawable size changes.
	OnSizeChange func(v *renderview.View, size renderview.Size)
}

// DrawableSizeWillChange forwards to OnSizeChange.
func (c *ClearDelegate) DrawableSizeWillChange(v *renderview.View, size renderview.Size) {
	if c.OnSizeChange != nil {
		c.OnSizeChange(v, size)
	}
}

// Draw clears the current drawable and presents it.
func (c *ClearDelegate) Draw(v *renderview.View) {
	rpd := v.CurrentRenderPassDescriptor()
	if rpd == nil {
		return
	}
	if err := c.clear(rpd); err != nil {
		rpd.Drawable.Discard()
		renderview.Logger().Warn("wgpusurface: clear frame failed", "err", err)
		return
	}
	if err := rpd.Drawable.Present(); err != nil {
		renderview.Logger().Warn("wgpusurface: present failed", "err", err)
	}
}

func (c *ClearDelegate) clear(rpd *renderview.RenderPassDescriptor) error {
	if c.Device == nil {
		return errors.New("wgpusurface: clear delegate has no device")
	}
	enc, err := c.Device.CreateCommandEncoder(nil)
	if err != nil {
		return fmt.Errorf("wgpusurface: create command encoder: %w", err)
	}
	pass, err := BeginRenderPass(enc, rpd)
	if err != nil {
		return err
	}
	if err := pass.End(); err != nil {
		return fmt.Errorf("wgpusurface: end render pass: %w", err)
	}
	cmd, err := enc.Finish()
	if err != nil {
		return fmt.Errorf("wgpusurface: finish: %w", err)
	}
	if _, err := c.Device.Queue().Submit(cmd); err != nil {
		return fmt.Errorf("wgpusurface: submit: %w", err)
	}
	return nil
}

var _ renderview.Delegate = (*ClearDelegate)(nil)
