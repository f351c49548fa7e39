// Package vim provides the Vim-flavored stores and key grammar an insert
// session talks to.
//
// RegisterStore holds the unnamed, named, numbered, small delete, last
// inserted (.) and clipboard (+, *) registers. Changes rotate the numbered
// registers like deletes do. MarkStore holds the marks sessions maintain:
// ^ for the last insert position and [ / ] around the last change.
//
// # Key Grammar
//
// The parser accepts the subset of normal mode that enters insert mode:
//
//	[count]["register](i|a|I|A|o|O|R|s|S|C|gi|gI)
//	[count]["register]c[count][o](l|h|$|w|e|iw|c)
//	.
//
// Examples:
//   - "3A": count=3, variant=insert-after-end-of-line
//   - "ciw": variant=change, target=InnerWord
//   - "coiw": variant=change-occurrence, target=InnerWord
//   - "cc": variant=change-line
package vim
