// Package mindsdbsql is the SQL front-end for an ML-integrated query
// engine: it lexes and parses one of three overlapping SQL dialects into a
// common AST (package ast), and rewrites SELECT queries that cross
// integrations and predictors into an ordered QueryPlan (package planner).
//
// The two collaborators that matter are dialect-aware parsing (package
// parser, built on package lexer) and the rule-driven planner (package
// planner); every AST node also renders back to SQL text via ToString.
// Everything else — the CLI, dialect-registry bootstrapping, DDL
// execution, the step executor, and integration drivers — lives outside
// this module.
//
// Example:
//
//	tree, err := mindsdbsql.ParseSQL("select * from mysql.tab where x > 1", mindsdbsql.MindsDB)
package mindsdbsql
