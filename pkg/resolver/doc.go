/*
Package resolver expands semantic vignette elements into an ordered stage script.

The resolver is the first stage of the pipeline. It looks every element up in the
catalog, clamps counts, spreads groups around their nominal position, synthesizes
entrance moves and idle animations, and collects every reaction effect into a single
deduplicated set. Unknown keywords never abort resolution; they are reported in
StageScript.Missing.

Positions in the output are symbolic only. Turning them into coordinates is the job
of the layout package.
*/
package resolver
