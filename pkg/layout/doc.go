/*
Package layout resolves symbolic stage positions into collision-free coordinates.

The stage is modelled as a grid of 5 columns by 3 depth rows. Every symbolic
position maps to an ordered preference list of slots, so repeated requests for the
same position fill outward instead of colliding. Slots too close to a scene's static
props are blocked.

Layout also rewrites instant on-stage appearances into staggered walk-ins (an
off-stage spawn followed by a timed move) and gives every move a duration
proportional to its travel distance.

The engine is pure: it never mutates the script it is given.
*/
package layout
