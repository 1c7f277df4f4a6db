// package polyterms implements the symbolic multilinear-polynomial
// expression tree used to describe a subtable's multilinear extension
// without materializing it: Expr is the recursive form (Const, Var, Sum,
// Prod, Pow) and MultilinearPolyTerms pairs one with its variable count.
package polyterms
