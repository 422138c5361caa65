// Package calc implements an integer-result calculator over infix arithmetic.
//
// Expressions use numbers, variables, the binary operators + - * / ^, and
// parentheses. "2 + 3 * 4" is 14. Runs of signs fold together, so "2 --- 3"
// is "2 - 3" and "--5" is "+5". Every operator is left-associative,
// including ^: "2^3^2" is "(2^3)^2".
//
// Evaluation goes through three steps. Tokenize splits the text into tokens,
// ToPostfix reorders them into reverse Polish notation, and Evaluate reduces
// the postfix sequence to a number with the help of an Env that resolves
// variable names. Parse combines the first two. Results are computed with
// arbitrary-precision floats and truncated toward zero.
//
package calc
