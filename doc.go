// Package rxtui is a reactive terminal user-interface core.
//
// Components produce a virtual node tree each frame; the tree is diffed
// against the previous frame to generate structural patches, which update a
// mutable render tree. The render tree is laid out with a CSS-like box model,
// rasterized into a back cell buffer, and the back buffer is diffed against
// the front buffer to emit a minimal sequence of terminal writes.
package rxtui
