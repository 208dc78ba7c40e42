// Package rotation normalizes the orientation of a timecard image.
//
// Rotate turns an encoded image clockwise by a multiple of 90 degrees and
// re-encodes it in its original format. A zero rotation returns the input
// untouched. For 90 and 270 degrees the width and height swap; the pixel
// content is neither cropped nor scaled.
//
// Supported formats: JPEG, PNG, GIF, BMP and TIFF. WebP images can be loaded
// and previewed but not rotated, since no WebP encoder is available.
package rotation
