package git

import "time"

type Signature struct {
	Name  string
	Email string
	When  time.Time
}

type Commit struct {
	Hash    string
	Author  Signature
	Message string
}

// Summary returns the first line of the commit message.
func (c Commit) Summary() string {
	for i, r := range c.Message {
		if r == '\n' {
			return c.Message[:i]
		}
	}
	return c.Message
}

type Branch struct {
	Name     string
	Hash     string
	Upstream string // remote/branch tracked by this branch, if any
}

type RemoteBranch struct {
	Remote string
	Name   string // branch name without the remote prefix
	Hash   string
}

// FullName returns the remote tracking name, e.g. origin/main.
func (b RemoteBranch) FullName() string {
	return b.Remote + "/" + b.Name
}

type Tag struct {
	Name string
	Hash string
}

type Remote struct {
	Name    string
	URLs    []string
	Enabled bool
}

// Refs is a point-in-time view of the repository refs the tree is built from.
type Refs struct {
	Head           string // checked out branch, empty when detached
	Branches       []Branch
	RemoteBranches []RemoteBranch
	Tags           []Tag
	Remotes        []Remote
}
