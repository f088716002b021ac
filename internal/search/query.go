package search

import (
	"fmt"
	"slices"
	"strings"
)

const (
	// queryPrefix は描画結果の先頭に一度だけ付与される
	queryPrefix = "q="
	// separator はトークン間の区切り文字
	separator = "+"
)

// Repository はクエリの repo 述語を種付けできるリポジトリ識別子
type Repository interface {
	// FullName は "owner/name" 形式の名前を返す
	FullName() string
}

// Query はGitHub検索APIのクエリ文字列を組み立てるビルダー
//
// 値型として扱い、各メソッドは更新後のQueryを返す。
//
//	q := search.New().Repo("rust-lang", "rust").Is("merged").Label("hacktoberfest")
//	fmt.Println(q) // q=repo:rust-lang/rust+is:merged+label:hacktoberfest
type Query struct {
	repo  []string
	is    []string
	label []string
	kind  []string
	state []string
	no    []string
}

// New は述語を持たない空のQueryを返す
func New() Query {
	return Query{}
}

// FromRepository は repo 述語を一つだけ持つQueryを返す
// r.FullName() の値は検証せずにそのまま使う
func FromRepository(r Repository) Query {
	return Query{repo: []string{r.FullName()}}
}

// Repo は repo:owner/name を追加する
func (q Query) Repo(owner, name string) Query {
	q.repo = appendValue(q.repo, fmt.Sprintf("%s/%s", owner, name))
	return q
}

// Is は is:statement を追加する
func (q Query) Is(statement string) Query {
	q.is = appendValue(q.is, statement)
	return q
}

// Label は label:statement を追加する
func (q Query) Label(statement string) Query {
	q.label = appendValue(q.label, statement)
	return q
}

// Type は type:statement を追加する
func (q Query) Type(statement string) Query {
	q.kind = appendValue(q.kind, statement)
	return q
}

// No は no:statement を追加する
func (q Query) No(statement string) Query {
	q.no = appendValue(q.no, statement)
	return q
}

// IsEmpty は述語が一つもない場合にtrueを返す
func (q Query) IsEmpty() bool {
	return q.Len() == 0
}

// Len は全カテゴリの述語数の合計を返す
func (q Query) Len() int {
	return len(q.repo) + len(q.is) + len(q.label) + len(q.kind) + len(q.state) + len(q.no)
}

// String はクエリを q=<category>:<value>[+<category>:<value>]... 形式で描画する
func (q Query) String() string {
	var sb strings.Builder
	sb.WriteString(queryPrefix)

	first := true
	for _, c := range q.categories() {
		for _, v := range c.values {
			if !first {
				sb.WriteString(separator)
			}
			first = false
			sb.WriteString(c.name)
			sb.WriteByte(':')
			sb.WriteString(v)
		}
	}

	return sb.String()
}

// category は描画用のカテゴリ名と値の組
type category struct {
	name   string
	values []string
}

// categories は描画順に並べたカテゴリを返す
// 順序は repo, is, label, type, state, no で固定
func (q Query) categories() []category {
	return []category{
		{name: "repo", values: q.repo},
		{name: "is", values: q.is},
		{name: "label", values: q.label},
		{name: "type", values: q.kind},
		{name: "state", values: q.state},
		{name: "no", values: q.no},
	}
}

// appendValue は常に新しいbacking arrayへ追加する
// 分岐したQuery同士は互いの追加を観測しない
func appendValue(values []string, v string) []string {
	return append(slices.Clip(values), v)
}
