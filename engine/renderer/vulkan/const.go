package vulkan

/**
 * @brief Max number of slot declarations in a single binding set layout
 * @todo TODO: make configurable
 */
const VULKAN_MAX_BINDING_SLOTS uint32 = 32

/**
 * @brief Default frame multiplicity when the embedding engine does not
 * provide one (double buffering plus one recording frame)
 */
const VULKAN_DEFAULT_FRAMES_IN_FLIGHT uint32 = 3
