package pdf

import _ "embed"

// mplusFont covers Latin, kana and JIS kanji.
//
//go:embed fonts/mplus-1p-regular.ttf
var mplusFont []byte
