package testkit

// Samples are documents that exercise every token family: CJK and Western
// letters, nested and crossing marks, quotes, shorthand apostrophes, inline
// Markdown and spacing edge cases. Parser tests and fuzz seeds share them.
var Samples = []string{
	"",
	"   ",
	"Hello, world!",
	"中文English混排，“引号”和（括号）。",
	"([)]",
	"a (b [c] d) e",
	"unclosed ( and \"quote",
	"**粗体** and `code` and [link](http://x.y) <br> \\*",
	"[*a](b)*  trailing  \n",
	"「嵌套『引号』」 don't '90s",
	"tab\tand\nnewline",
	"<code>*raw* (a</code> ~~del~~ ![图](p.png \"t\")",
}
