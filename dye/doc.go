// Package dye recolors sprite images using dye specifications.
//
// A dye specification is a list of up to two strings. The first one holds
// one gradient per palette channel, separated by ';'. A gradient is either
// self-labeled ("W:#ff0000,00ff00") or takes its channel letter from the
// matching segment of the second string, which usually comes from the
// sprite's imageset src ("path.png|W;G").
//
// Recoloring works on palette channels derived from the image's own pixels:
// a pixel whose only non-zero component is red belongs to channel R, a pixel
// with equal non-zero red and green belongs to channel Y, and so on. The
// shared component value selects a position on the channel's gradient.
package dye
