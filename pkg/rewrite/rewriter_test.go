package rewrite_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/classwrap/pkg/document"
	"github.com/Sumatoshi-tech/classwrap/pkg/rewrite"
)

func TestLocate_FindsAttribute(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		line  string
		want  string
		caret int
	}{
		{name: "class", line: `<div class="box">`, want: `class="box"`, caret: 8},
		{name: "className", line: `<div className="a b">`, want: `className="a b"`, caret: 5},
		{name: "mixed case", line: `<div CLASSNAME="x">`, want: `CLASSNAME="x"`, caret: 10},
		{name: "first match only", line: `<a class="one"><b class="two">`, want: `class="one"`, caret: 3},
		{name: "caret touching end", line: `<i class="k"/>`, want: `class="k"`, caret: 12},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			span, err := rewrite.Default().Locate(tc.line, tc.caret)
			require.NoError(t, err)
			assert.Equal(t, tc.want, tc.line[span.Start:span.End])

			value, err := rewrite.ExtractClassName(tc.line[span.Start:span.End])
			require.NoError(t, err)
			assert.Equal(t, strings.Split(tc.want, `"`)[1], value)
		})
	}
}

func TestLocate_NotFound(t *testing.T) {
	t.Parallel()

	for _, line := range []string{
		"",
		"const x = 1;",
		`<div class="">`,
		`<div class='single'>`,
		`<div className={cn("box")}>`,
	} {
		_, err := rewrite.Default().Locate(line, 0)
		require.ErrorIs(t, err, rewrite.ErrNotFound, "line %q", line)
	}
}

func TestLocate_CaretContainment(t *testing.T) {
	t.Parallel()

	line := `<div class="box">` // attribute spans [5, 16).

	for caret := range len(line) + 2 {
		_, err := rewrite.Default().Locate(line, caret)

		if caret >= 5 && caret <= 16 {
			require.NoError(t, err, "caret %d", caret)
		} else {
			require.ErrorIs(t, err, rewrite.ErrOutOfScope, "caret %d", caret)
		}
	}
}

func TestLocate_CaretCheckDisabled(t *testing.T) {
	t.Parallel()

	opts := rewrite.DefaultOptions()
	opts.CheckCaret = false

	rw, err := rewrite.New(opts)
	require.NoError(t, err)

	span, err := rw.Locate(`<div class="box">`, 0)
	require.NoError(t, err)
	assert.Equal(t, rewrite.Span{Start: 5, End: 16}, span)
}

func TestLocateAll(t *testing.T) {
	t.Parallel()

	attrs := rewrite.Default().LocateAll(`<a class="one"><b className="two three">`)
	require.Len(t, attrs, 2)

	assert.Equal(t, "one", attrs[0].Value)
	assert.Equal(t, rewrite.Span{Start: 3, End: 14}, attrs[0].Span)
	assert.Equal(t, "two three", attrs[1].Value)
	assert.Equal(t, `className="two three"`, attrs[1].Text)
}

func TestExtractClassName_ParseError(t *testing.T) {
	t.Parallel()

	for _, text := range []string{`class=""`, "class=box", ""} {
		_, err := rewrite.ExtractClassName(text)
		require.ErrorIs(t, err, rewrite.ErrParse, "text %q", text)
	}
}

func TestBuildReplacement(t *testing.T) {
	t.Parallel()

	assert.Equal(t, `className={cn("foo")}`, rewrite.Default().BuildReplacement("foo"))

	opts := rewrite.DefaultOptions()
	opts.Helper = "classNames"
	opts.Quote = rewrite.QuoteSingle

	rw, err := rewrite.New(opts)
	require.NoError(t, err)
	assert.Equal(t, `className={classNames('foo bar')}`, rw.BuildReplacement("foo bar"))
}

func TestRewriteReachesFixedPoint(t *testing.T) {
	t.Parallel()

	rw := rewrite.Default()
	line := `<div class="box">`

	span, err := rw.Locate(line, 6)
	require.NoError(t, err)

	out := line[:span.Start] + rw.BuildReplacement("box") + line[span.End:]

	_, err = rw.Locate(out, 6)
	require.ErrorIs(t, err, rewrite.ErrNotFound)
}

func TestNeedsImport(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		doc  string
		want bool
	}{
		{name: "double quotes", doc: "import classNames from \"classnames\";\nx", want: false},
		{name: "single quotes", doc: "import cn from 'classnames'\nx", want: false},
		{name: "any casing", doc: "IMPORT CX FROM \"ClassNames\";", want: false},
		{name: "not first line", doc: "import React from 'react';\nimport cx from 'classnames';", want: false},
		{name: "absent", doc: "import React from 'react';\n", want: true},
		{name: "named import", doc: "import { cn } from 'classnames';", want: true},
		{name: "other module", doc: "import clsx from 'clsx';", want: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, rewrite.Default().NeedsImport(tc.doc))
		})
	}
}

func TestNeedsImport_RepeatedCallsAgree(t *testing.T) {
	t.Parallel()

	rw := rewrite.Default()
	doc := "import cx from 'classnames';"

	for range 3 {
		assert.False(t, rw.NeedsImport(doc))
	}
}

func TestFindImportInsertionLine(t *testing.T) {
	t.Parallel()

	doc := document.New("import a from 'a';\nimport b from 'b';\nimport c from 'c';\nconst x = 1;\n")

	line, err := rewrite.FindImportInsertionLine(doc)
	require.NoError(t, err)
	assert.Equal(t, 3, line)

	line, err = rewrite.FindImportInsertionLine(document.New("const x = 1;"))
	require.NoError(t, err)
	assert.Equal(t, 0, line)
}

func TestFindImportInsertionLine_AllImports(t *testing.T) {
	t.Parallel()

	_, err := rewrite.FindImportInsertionLine(document.New("import a from 'a';\nimport b from 'b';"))
	require.ErrorIs(t, err, rewrite.ErrNoInsertionPoint)
}

func TestPlan_InsertsImport(t *testing.T) {
	t.Parallel()

	buf := document.New("import React from 'react';\nconst C = () => <div class=\"box\">hi</div>;")

	res, err := rewrite.Default().Plan(buf, document.Position{Line: 1, Column: 30})
	require.NoError(t, err)

	assert.Equal(t, "box", res.ClassName)
	require.NotNil(t, res.Import)
	assert.Equal(t, document.Position{Line: 1}, res.Import.Range.Start)
	assert.Equal(t, "import classNames from \"classnames\";\n", res.Import.NewText)

	require.NoError(t, buf.Apply(res.Transaction()))

	assert.Equal(t, "import React from 'react';", buf.LineText(0))
	assert.Equal(t, `import classNames from "classnames";`, buf.LineText(1))
	assert.Equal(t, `const C = () => <div className={cn("box")}>hi</div>;`, buf.LineText(2))
}

func TestPlan_ExistingImport(t *testing.T) {
	t.Parallel()

	buf := document.New("import React from 'react';\nimport classNames from \"classnames\";\n" +
		"const C = () => <div class=\"box\">hi</div>;")

	res, err := rewrite.Default().Plan(buf, document.Position{Line: 2, Column: 30})
	require.NoError(t, err)
	assert.Nil(t, res.Import)
	assert.Len(t, res.Transaction().Edits, 1)
}

func TestPlan_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		want  error
		name  string
		text  string
		caret document.Position
	}{
		{
			name:  "no attribute",
			text:  "const x = 1;\n",
			caret: document.Position{},
			want:  rewrite.ErrNotFound,
		},
		{
			name:  "caret outside",
			text:  "const C = <div class=\"box\">hi</div>;\n",
			caret: document.Position{Column: 2},
			want:  rewrite.ErrOutOfScope,
		},
		{
			name:  "no insertion point",
			text:  "import x from 'y'; <div class=\"box\">",
			caret: document.Position{Column: 25},
			want:  rewrite.ErrNoInsertionPoint,
		},
		{
			name:  "caret line past end",
			text:  "<div class=\"box\">",
			caret: document.Position{Line: 4},
			want:  rewrite.ErrNotFound,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := rewrite.Default().Plan(document.New(tc.text), tc.caret)
			require.ErrorIs(t, err, tc.want)
		})
	}
}

func TestPlan_NoInsertionPointIgnoredWhenImportPresent(t *testing.T) {
	t.Parallel()

	buf := document.New("import cx from 'classnames'; <div class=\"box\">")

	res, err := rewrite.Default().Plan(buf, document.Position{Column: 35})
	require.NoError(t, err)
	assert.Nil(t, res.Import)
}

func TestNew_RejectsInvalidOptions(t *testing.T) {
	t.Parallel()

	tests := []func(*rewrite.Options){
		func(o *rewrite.Options) { o.Helper = "" },
		func(o *rewrite.Options) { o.Helper = "cn()" },
		func(o *rewrite.Options) { o.ImportName = "1abc" },
		func(o *rewrite.Options) { o.ImportSource = "" },
		func(o *rewrite.Options) { o.Quote = "`" },
		func(o *rewrite.Options) { o.ImportQuote = "" },
	}

	for i, mutate := range tests {
		opts := rewrite.DefaultOptions()
		mutate(&opts)

		_, err := rewrite.New(opts)
		require.ErrorIs(t, err, rewrite.ErrInvalidOptions, "case %d", i)
	}
}

func TestImportStatement_CustomSource(t *testing.T) {
	t.Parallel()

	opts := rewrite.DefaultOptions()
	opts.ImportName = "clsx"
	opts.ImportSource = "clsx"
	opts.ImportQuote = rewrite.QuoteSingle

	rw, err := rewrite.New(opts)
	require.NoError(t, err)

	assert.Equal(t, "import clsx from 'clsx';", rw.ImportStatement())
	assert.False(t, rw.NeedsImport(`import clsx from "clsx"`))
	assert.True(t, rw.NeedsImport(`import cx from "classnames"`))
}

func TestQuoteFromName(t *testing.T) {
	t.Parallel()

	q, err := rewrite.QuoteFromName("single")
	require.NoError(t, err)
	assert.Equal(t, rewrite.QuoteSingle, q)

	q, err = rewrite.QuoteFromName("double")
	require.NoError(t, err)
	assert.Equal(t, rewrite.QuoteDouble, q)

	_, err = rewrite.QuoteFromName("backtick")
	require.ErrorIs(t, err, rewrite.ErrInvalidOptions)
}

func TestPlan_ImportFollowsCRLF(t *testing.T) {
	t.Parallel()

	buf := document.New("import React from 'react';\r\n<p class=\"a\">\r\n")

	res, err := rewrite.Default().Plan(buf, document.Position{Line: 1, Column: 3})
	require.NoError(t, err)
	require.NotNil(t, res.Import)
	assert.Equal(t, "import classNames from \"classnames\";\r\n", res.Import.NewText)

	require.NoError(t, buf.Apply(res.Transaction()))
	assert.Equal(t, "import React from 'react';\r\nimport classNames from \"classnames\";\r\n<p className={cn(\"a\")}>\r\n",
		buf.Text())
}
