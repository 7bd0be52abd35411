// Package wrap presents long logical lines as multiple visually wrapped
// rows without touching the underlying document, and translates cursor,
// selection, and viewport coordinates between the logical (line, column)
// space the document stores and the visual (row, in-row column) space the
// renderer draws.
//
// The entry points are Line, the pure word-boundary wrapping function, and
// Cache, which wraps a whole Document, assigns global visual row indices,
// and answers the mapping queries. The cache is invalidated in O(1) on
// every edit or width change and rebuilt lazily in one O(document) pass.
// Mapping queries clamp out-of-range input to the nearest valid position;
// queried while stale, they degrade to the identity mapping instead of
// guessing at a layout they no longer have.
package wrap
