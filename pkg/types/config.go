package types

// ExperimentConfig is the flat configuration record of a universal-embedding
// training experiment. Field names follow the on-disk JSON keys; the record is
// authored once per experiment and never mutated afterwards.
//
// Datasets and LearningRate are parallel sequences: the i-th learning rate
// applies to the i-th label-map source.
type ExperimentConfig struct {
	ExpName   string `json:"exp_name"`
	Agent     string `json:"agent,omitempty"`
	Mode      string `json:"mode,omitempty"`
	ModelType string `json:"model_type"`
	ModelName string `json:"model_name,omitempty"`

	DataLoader        string   `json:"data_loader,omitempty"`
	Datasets          []string `json:"datasets"`
	DataFolder        string   `json:"data_folder"`
	NumWorkers        int      `json:"num_workers,omitempty"`
	DataLoaderWorkers int      `json:"data_loader_workers,omitempty"`
	PinMemory         bool     `json:"pin_memory,omitempty"`
	AsyncLoading      bool     `json:"async_loading,omitempty"`
	CpToTmpdir        bool     `json:"cp_to_tmpdir,omitempty"`

	UseScheduler  bool      `json:"use_scheduler,omitempty"`
	LearningRate  []float64 `json:"learning_rate"`
	MaxEpoch      int       `json:"max_epoch"`
	ValidateEvery int       `json:"validate_every,omitempty"`

	TrainBatchSize int `json:"train_batch_size"`
	ValidBatchSize int `json:"valid_batch_size,omitempty"`
	TestBatchSize  int `json:"test_batch_size,omitempty"`

	Cuda        bool `json:"cuda,omitempty"`
	GPUDevice   int  `json:"gpu_device,omitempty"`
	Seed        int  `json:"seed,omitempty"`
	Tensorboard bool `json:"tensorboard,omitempty"`

	EmbeddingDim       []int  `json:"embedding_dim"`
	NumberOfFeatureMap int    `json:"number_of_feature_map,omitempty"`
	PoolingFactors     []int  `json:"pooling_factors"`
	GroupNorm          int    `json:"group_norm,omitempty"`
	DecoderDepth       int    `json:"decoder_depth,omitempty"`
	DecoderAtrou       bool   `json:"decoder_atrou,omitempty"`
	MemoryMonger       bool   `json:"memory_monger,omitempty"`
	Mul                bool   `json:"mul,omitempty"`
	Softpos            bool   `json:"softpos,omitempty"`
	UsePos             bool   `json:"use_pos,omitempty"`
	UpMode             string `json:"up_mode,omitempty"`

	CheckpointFile  string `json:"checkpoint_file,omitempty"`
	LossByPatchFile string `json:"loss_by_patch_file,omitempty"`
}

// EmbeddingChannels returns the channel count of the latent space, the first
// entry of embedding_dim.
func (c ExperimentConfig) EmbeddingChannels() int {
	if len(c.EmbeddingDim) < 1 {
		return 0
	}
	return c.EmbeddingDim[0]
}

// EmbeddingPixels returns the pixel width of the latent space, the second
// entry of embedding_dim.
func (c ExperimentConfig) EmbeddingPixels() int {
	if len(c.EmbeddingDim) < 2 {
		return 0
	}
	return c.EmbeddingDim[1]
}
