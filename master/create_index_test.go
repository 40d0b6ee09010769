package master_test

import (
	"time"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/coreindex/idxmaster/cluster"
	"github.com/coreindex/idxmaster/cmn"
	"github.com/coreindex/idxmaster/master"
)

const settleTimeout = 2 * time.Second

var _ = Describe("CreateIndex", func() {
	AfterEach(func() {
		cfg := cmn.GCO.BeginUpdate()
		cfg.NumberOfShards = cmn.DefaultNumberOfShards
		cfg.NumberOfReplicas = cmn.DefaultNumberOfReplicas
		cmn.GCO.CommitUpdate(cfg)
	})

	Context("single-node cluster", func() {
		It("acknowledges synchronously without arming a timer (boundary: nodes.count == 1)", func() {
			h := newHarness(singleNode(), "")
			listener := newRecordingListener()

			req := master.NewCreateIndexRequest("logs-2024").WithTimeout(5 * time.Second)
			h.coordinator.CreateIndex(req, listener)

			resp, ok := listener.waitResponse(settleTimeout)
			Expect(ok).To(BeTrue())
			Expect(resp.Acknowledged).To(BeTrue())

			state := h.queue.State()
			Expect(state.Meta.Contains("logs-2024")).To(BeTrue())
			Expect(state.Routing.Contains("logs-2024")).To(BeTrue())
		})
	})

	Context("happy path, 3 nodes", func() {
		It("acknowledges once both peers report creation", func() {
			nodes, p1, p2 := threeNodeCluster()
			h := newHarness(nodes, "")
			listener := newRecordingListener()

			req := master.NewCreateIndexRequest("logs-2024").
				WithSettings(cmn.Settings{"index.number_of_shards": "3"}).
				WithTimeout(5 * time.Second)
			h.coordinator.CreateIndex(req, listener)

			// Give the metadata-commit task a moment to run and register the
			// tracker before peers report; an early notification still counts.
			time.Sleep(50 * time.Millisecond)
			h.registry.Notify("logs-2024", p1.ID)
			h.registry.Notify("logs-2024", p2.ID)

			resp, ok := listener.waitResponse(settleTimeout)
			Expect(ok).To(BeTrue())
			Expect(resp.Acknowledged).To(BeTrue())

			state := h.queue.State()
			imd, present := state.Meta.Get("logs-2024")
			Expect(present).To(BeTrue())
			shards, err := imd.NumberOfShards(cmn.GCO.Get())
			Expect(err).NotTo(HaveOccurred())
			Expect(shards).To(BeEquivalentTo(3))

			replicas, err := imd.NumberOfReplicas(cmn.GCO.Get())
			Expect(err).NotTo(HaveOccurred())
			Expect(replicas).To(BeEquivalentTo(1))

			irt, present := state.Routing.Get("logs-2024")
			Expect(present).To(BeTrue())
			Expect(irt.Shards).To(HaveLen(3))
			for _, shard := range irt.Shards {
				Expect(shard.Primary.Phase).To(Equal(cluster.PhaseInitializing))
			}
		})
	})

	Context("name collision with alias", func() {
		It("fails with CollidesWithAlias and leaves state unchanged", func() {
			nodes, _, _ := threeNodeCluster()
			h := newHarness(nodes, "")

			h.queue.Submit(master.Task{
				Description: "seed-alias",
				Execute: func(state *cluster.State) *cluster.State {
					next := state.Clone()
					next.Meta.Aliases["events"] = struct{}{}
					next.Meta.Version++
					return next
				},
			})
			time.Sleep(20 * time.Millisecond)
			before := h.queue.State()

			listener := newRecordingListener()
			h.coordinator.CreateIndex(master.NewCreateIndexRequest("events"), listener)

			err, ok := listener.waitFailure(settleTimeout)
			Expect(ok).To(BeTrue())

			invalid, isInvalid := err.(*cmn.ErrInvalidIndexName)
			Expect(isInvalid).To(BeTrue())
			Expect(invalid.Reason).To(Equal(cmn.NameCollidesWithAlias))

			after := h.queue.State()
			Expect(after.Equal(before)).To(BeTrue())
		})
	})

	Context("uppercase name", func() {
		It("fails with MustBeLowercase", func() {
			nodes, _, _ := threeNodeCluster()
			h := newHarness(nodes, "")
			listener := newRecordingListener()

			h.coordinator.CreateIndex(master.NewCreateIndexRequest("LOGS"), listener)

			err, ok := listener.waitFailure(settleTimeout)
			Expect(ok).To(BeTrue())
			invalid, isInvalid := err.(*cmn.ErrInvalidIndexName)
			Expect(isInvalid).To(BeTrue())
			Expect(invalid.Reason).To(Equal(cmn.NameMustBeLowercase))
		})
	})

	Context("timeout", func() {
		It("delivers acknowledged=false at the deadline, but still creates and routes the index", func() {
			nodes, p1, _ := threeNodeCluster()
			h := newHarness(nodes, "")
			listener := newRecordingListener()

			req := master.NewCreateIndexRequest("logs-2024").WithTimeout(200 * time.Millisecond)
			start := time.Now()
			h.coordinator.CreateIndex(req, listener)

			time.Sleep(50 * time.Millisecond)
			h.registry.Notify("logs-2024", p1.ID) // only one of two peers reports

			resp, ok := listener.waitResponse(2 * time.Second)
			elapsed := time.Since(start)
			Expect(ok).To(BeTrue())
			Expect(resp.Acknowledged).To(BeFalse())
			// The deadline is pinned to exactly the request's own timeout: no
			// slack is added on top of it.
			Expect(elapsed).To(BeNumerically(">=", 200*time.Millisecond))
			Expect(elapsed).To(BeNumerically("<", 400*time.Millisecond))

			state := h.queue.State()
			Expect(state.Meta.Contains("logs-2024")).To(BeTrue())
			Expect(state.Routing.Contains("logs-2024")).To(BeTrue())
		})
	})

	Context("mapping parse failure", func() {
		It("deletes the local index and leaves cluster state unchanged", func() {
			nodes, _, _ := threeNodeCluster()
			h := newHarness(nodes, "")
			listener := newRecordingListener()
			before := h.queue.State()

			req := master.NewCreateIndexRequest("logs-2024").WithMappings(map[string]string{"bad": "!!!"})
			h.coordinator.CreateIndex(req, listener)

			err, ok := listener.waitFailure(settleTimeout)
			Expect(ok).To(BeTrue())
			_, isParse := err.(*cmn.ErrMapperParsing)
			Expect(isParse).To(BeTrue())

			after := h.queue.State()
			Expect(after.Equal(before)).To(BeTrue())
			_, exists := h.localStore.IndexServiceSafe("logs-2024")
			Expect(exists).To(BeFalse())
		})
	})

	Context("duplicate create (round-trip idempotence)", func() {
		It("rejects a second create for the same name with AlreadyExists", func() {
			h := newHarness(singleNode(), "")
			first := newRecordingListener()
			h.coordinator.CreateIndex(master.NewCreateIndexRequest("dup"), first)
			_, ok := first.waitResponse(settleTimeout)
			Expect(ok).To(BeTrue())

			second := newRecordingListener()
			h.coordinator.CreateIndex(master.NewCreateIndexRequest("dup"), second)
			err, ok := second.waitFailure(settleTimeout)
			Expect(ok).To(BeTrue())
			_, isExists := err.(*cmn.ErrIndexAlreadyExists)
			Expect(isExists).To(BeTrue())
		})
	})
})
