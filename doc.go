// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

/*
Package rudd implements Binary Decision Diagrams (BDD), a canonical
representation of Boolean functions over a fixed set of variables, or
equivalently of sets of Boolean vectors of fixed width.

Basics

A manager owns a set of variables (NewVar appends one more), each identified by an (integer)
index in [0, NumVars()), called its level. Two constructors,
NewClassic and NewModern, build a manager; both implement the same BDD
interface and share every other part of the engine, differing only in
how they hash-cons nodes into a unique table: NewClassic keeps one global
table, NewModern keeps one sub-table per variable. Multiple independent
managers, with different variable counts, can coexist.

Operations return a *Node, a handle to one vertex together with the
manager that produced it; passing a Node to a different manager than the
one that created it reports an error rather than reading garbage. Edges
between nodes carry a single complement bit rather than a separate
negated node, so Not is a constant-time bit flip and every other
operation only ever needs to canonicalize, never to duplicate, a negated
subgraph.

Automatic memory management

The library is written in pure Go. Each Node carries a finalizer that
drops its root reference once nothing outside the manager can reach it
any more, so callers never call a matching "free": internal node
reference counts, garbage collection and node-table growth are all
handled inside the manager. Reference counts saturate rather than
overflow, so a node referenced enough times is simply never collected
again.

Use the debug build tag to enable logging and track computed-cache hit
rates; the default (release) build favors speed over diagnostics.
*/
package rudd
