/*Package swarm builds "point cloud" meshes: zero-dimensional meshes whose
cells are individual points located inside a distributed, partitioned parent
mesh. Given the same global coordinate list on every process, each process
claims exactly the points that fall inside cells it owns, giving every
in-domain point exactly one owner with no communication. The resulting
point cloud carries its points' coordinates, their parent cells, their
positions in the original list, and named per-point data blocks, and it can
host degree-0 discontinuous function spaces for point evaluation and
global integration.

Almost all of the functionality lives in lib/'s subpackages:

  - lib/mesh: the parent mesh partition surface and the simplicial test
    meshes.
  - lib/locate: point-in-cell search over a partition.
  - lib/swarm: construction, ownership, the point cloud query surface, and
    collective validation.
  - lib/fields: named per-point block storage.
  - lib/funcspace: DG0 function spaces over a point cloud.
  - lib/comm: the collectives behind global counts and validation.
*/
package swarm
