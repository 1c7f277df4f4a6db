// package subtable implements the materialize/evaluate pair for the limb
// subtables a range lookup decomposes into: FullLimb for a
// complete LimbBits-wide chunk, and Remainder for the short final
// chunk when NumBits is not a multiple of LimbBits.
package subtable
