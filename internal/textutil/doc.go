// Package textutil provides the text primitives shared by the device
// classifier and the cross-reference matcher.
//
// The primary use cases are:
//   - Folding device names to a comparable form (Unicode case and width)
//   - Tokenizing names into keyword candidates
//   - Computing bigram Dice similarity between two names
//   - Deriving filesystem- and ID-safe tokens from free text
//
// Tokenization lowercases text, splits on non-alphanumeric characters, and
// drops tokens shorter than 3 characters.
package textutil
